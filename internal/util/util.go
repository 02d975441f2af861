package util

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/keshon/cfgbak/internal/fs"
)

// MarshalPretty encodes v as indented UTF-8 JSON. Non-ASCII characters are
// written as-is, not escaped.
func MarshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFileAtomic writes data to path through a temp file and rename.
var WriteFileAtomic = func(fsys fs.FS, path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, tmpPath, err := fsys.CreateTempFile(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	defer fsys.Remove(tmpPath) // ensure cleanup on error

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	return fsys.Rename(tmpPath, path)
}

// ReadJSON reads a JSON file and unmarshals it into v
var ReadJSON = func(fsys fs.FS, path string, v any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
