package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"

	"github.com/keshon/cfgbak/internal/config"
)

const backupPath = "/api/manage/sysConfig/backup?action=backup"

const (
	retryAttempts = 3
	retryDelay    = 2 * time.Second
)

// ErrAuth signals a 401 from the admin API.
var ErrAuth = errors.New("authentication failed, check BACKUP_USERNAME and BACKUP_PASSWORD")

// Client downloads the configuration payload from the remote admin API.
type Client struct {
	URL      string
	Username string
	Password string
	HTTP     *http.Client

	// Delay between retry attempts; tests shorten it.
	Delay time.Duration

	// Log, when set, replaces the default logger so all lines of one
	// backup run share the same attributes.
	Log *slog.Logger
}

func (c *Client) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

func New(cfg *config.Config) *Client {
	return &Client{
		URL:      BuildURL(cfg.BaseURL),
		Username: cfg.Username,
		Password: cfg.Password,
		HTTP:     &http.Client{Timeout: config.RequestTimeout},
		Delay:    retryDelay,
	}
}

// BuildURL turns a bare host or partial URL into the full backup endpoint.
// A missing scheme defaults to https.
func BuildURL(base string) string {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return strings.TrimRight(base, "/") + backupPath
}

// transientError marks failures worth retrying: network-level problems,
// not HTTP status or parse errors.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Fetch downloads and parses the backup payload. Transient network errors
// are retried a few times; status and parse failures are final.
func (c *Client) Fetch() (any, error) {
	var payload any
	var lastErr error
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			var err error
			payload, err = c.fetchOnce()
			lastErr = err
			return err
		},
		IsFatalError: func(err error) bool {
			var te *transientError
			return !errors.As(err, &te)
		},
		NotifyFunc: func(err error, attempt int) {
			c.logger().Warn("backup download failed, retrying", "attempt", attempt, "error", err)
		},
		Attempts: retryAttempts,
		Delay:    c.Delay,
		Clock:    clock.WallClock,
	})
	if retry.IsAttemptsExceeded(err) {
		err = lastErr
	}
	if err != nil {
		return nil, fmt.Errorf("backup download failed: %w", err)
	}
	return payload, nil
}

func (c *Client) fetchOnce() (any, error) {
	c.logger().Info("downloading backup", "url", c.URL)

	req, err := http.NewRequest(http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build backup request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("User-Agent", "Backup-Bot/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &transientError{fmt.Errorf("request %s: %w", c.URL, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuth
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("backup endpoint returned status %d: %s", resp.StatusCode, body)
	}

	// The endpoint does not always set a JSON content type; trust the
	// body instead.
	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	return payload, nil
}
