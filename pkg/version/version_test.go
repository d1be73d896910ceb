package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		latest, current string
		want            bool
	}{
		{"1.10.0", "1.9.3", true},
		{"1.2.0", "1.2.0", false},
		{"1.2.0", "1.3.0", false},
		{"2.0.0", "1.99.99-dirty", true},
		{"9.9.9", "0.0.0-dev", false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, isNewer(c.latest, c.current), "%s vs %s", c.latest, c.current)
	}
}

func TestLatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.4.2"}`))
	}))
	defer srv.Close()

	old := ReleasesURL
	ReleasesURL = srv.URL
	defer func() { ReleasesURL = old }()

	latest, ok := LatestVersion(context.Background())
	require.True(t, ok)
	require.Equal(t, "1.4.2", latest)
}

func TestLatestVersion_IgnoresFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	old := ReleasesURL
	ReleasesURL = srv.URL
	defer func() { ReleasesURL = old }()

	_, ok := LatestVersion(context.Background())
	require.False(t, ok)
}

func TestFormatVersion(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldV, oldC, oldB }()

	Version, Commit, BuildTime = "1.0.0", "", ""
	require.Equal(t, "1.0.0 (development)", FormatVersion())

	Version, Commit, BuildTime = "1.0.0", "abc1234", "2026-01-02T03:04:05Z"
	require.Equal(t, "1.0.0 (commit: abc1234, built at: 2026-01-02T03:04:05Z)", FormatVersion())

	Version, Commit, BuildTime = "", "abc1234", ""
	require.Equal(t, "0.0.0-dev (commit: abc1234)", FormatVersion())
}
