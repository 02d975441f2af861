package fetch_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/keshon/cfgbak/internal/fetch"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*fetch.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := &fetch.Client{
		URL:      srv.URL + "/api/manage/sysConfig/backup?action=backup",
		Username: "admin",
		Password: "secret",
		HTTP:     srv.Client(),
		Delay:    time.Millisecond,
	}
	return c, srv
}

func TestBuildURL(t *testing.T) {
	cases := map[string]string{
		"backup.example.com":           "https://backup.example.com/api/manage/sysConfig/backup?action=backup",
		"backup.example.com:8443":      "https://backup.example.com:8443/api/manage/sysConfig/backup?action=backup",
		"http://backup.example.com":    "http://backup.example.com/api/manage/sysConfig/backup?action=backup",
		"https://backup.example.com/":  "https://backup.example.com/api/manage/sysConfig/backup?action=backup",
		"https://backup.example.com//": "https://backup.example.com/api/manage/sysConfig/backup?action=backup",
	}
	for base, want := range cases {
		if got := fetch.BuildURL(base); got != want {
			t.Fatalf("BuildURL(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestFetchSuccess(t *testing.T) {
	var gotUser, gotPass string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		// deliberately not application/json
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"config": {"name": "测试"}}`))
	})

	payload, err := c.Fetch()
	if err != nil {
		t.Fatal(err)
	}
	if gotUser != "admin" || gotPass != "secret" {
		t.Fatalf("basic auth not sent: %s/%s", gotUser, gotPass)
	}
	m, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", payload)
	}
	if _, ok := m["config"]; !ok {
		t.Fatalf("unexpected payload: %v", m)
	}
}

func TestFetchUnauthorized(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Fetch()
	if !errors.Is(err, fetch.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestFetchServerErrorNoRetry(t *testing.T) {
	calls := 0
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := c.Fetch(); err == nil {
		t.Fatal("expected error on 502")
	}
	if calls != 1 {
		t.Fatalf("status errors must not be retried, got %d calls", calls)
	}
}

func TestFetchBadJSON(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	if _, err := c.Fetch(); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestFetchRetriesNetworkErrors(t *testing.T) {
	c, srv := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()
	c.HTTP = &http.Client{Timeout: time.Second}

	start := time.Now()
	_, err := c.Fetch()
	if err == nil {
		t.Fatal("expected error against a closed server")
	}
	// three attempts with a tiny delay, but well under the timeout
	if time.Since(start) > 5*time.Second {
		t.Fatal("retries took too long")
	}
}
