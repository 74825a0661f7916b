package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pagesJSON = `[
  {"name": "Docs", "href": "https://example.com/docs", "compare": {"etag": "\"abf1\""}},
  {"name": "Blog", "href": "https://example.com/blog", "compare": {"etag": "\"abf1\""}},
  {"name": "Shop", "href": "https://example.com/shop", "compare": {"sha512": "309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f"}}
]`

func writePages(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func etagResponder(status int, etag string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		if etag != "" {
			header.Set("ETag", etag)
		}
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     header,
			Body:       io.NopCloser(strings.NewReader("hello world")),
			Request:    req,
		}, nil
	}
}

func newTransport() *httpmock.MockTransport {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", "https://example.com/docs", etagResponder(200, `"abf1"`))
	transport.RegisterResponder("GET", "https://example.com/blog", etagResponder(200, `"xyz"`))
	transport.RegisterResponder("GET", "https://example.com/shop", etagResponder(404, ""))
	return transport
}

func TestRun(t *testing.T) {
	path := writePages(t, "pages.json", pagesJSON)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		notStdout  []string
	}{
		// Test case for the default notice output
		// Verifies that the changed and the failed page get distinct notices and the matching page stays silent
		{
			name:     "notice output",
			args:     []string{"-pages", path},
			wantCode: exitOK,
			wantStdout: []string{
				"---- Blog ----\nPage for Blog does not match saved state.\nCheck https://example.com/blog for changes.\n",
				"---- Shop ----\nCould not check Shop (https://example.com/shop): HTTP 404",
			},
			notStdout: []string{"Docs"},
		},
		// Test case for fail-on-change
		// Verifies that changes turn into a non-zero exit status
		{
			name:     "fail on change",
			args:     []string{"-pages", path, "-fail-on-change"},
			wantCode: exitChanged,
		},
		// Test case for a parallel table run
		// Verifies that the table presenter is selected and lists every page with show-all
		{
			name:       "table output",
			args:       []string{"-pages", path, "-output", "table", "-show-all", "-workers", "3"},
			wantCode:   exitOK,
			wantStdout: []string{"https://example.com/docs", "https://example.com/blog", "https://example.com/shop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"page-change-monitor"}, tt.args...)

			code := run(context.Background(), args, &stdout, &stderr, newTransport())

			assert.Equal(t, tt.wantCode, code, stderr.String())
			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout.String(), want)
			}
			for _, not := range tt.notStdout {
				assert.NotContains(t, stdout.String(), not)
			}
		})
	}
}

func TestRun_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		// Test case for a missing pages flag
		// Verifies that there is no implicit default page list
		{
			name:    "no pages flag",
			args:    func(t *testing.T) []string { return nil },
			wantErr: "Usage:",
		},
		// Test case for a page with both compare keys
		// Verifies that the whole run aborts before any request is made
		{
			name: "ambiguous compare",
			args: func(t *testing.T) []string {
				return []string{"-pages", writePages(t, "pages.json",
					`[{"name": "Docs", "href": "https://example.com/docs", "compare": {"etag": "\"a\"", "sha512": "`+strings.Repeat("a", 128)+`"}}]`)}
			},
			wantErr: "exactly one of etag or sha512",
		},
		// Test case for an empty page list
		// Verifies that a run with nothing to check is refused
		{
			name: "empty list",
			args: func(t *testing.T) []string {
				return []string{"-pages", writePages(t, "pages.yaml", "")}
			},
			wantErr: "no pages configured",
		},
		// Test case for an invalid worker count
		// Verifies that options are validated before loading pages
		{
			name: "zero workers",
			args: func(t *testing.T) []string {
				return []string{"-pages", "pages.json", "-workers", "0"}
			},
			wantErr: "Workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			transport := httpmock.NewMockTransport()
			args := append([]string{"page-change-monitor"}, tt.args(t)...)

			code := run(context.Background(), args, &stdout, &stderr, transport)

			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr.String(), tt.wantErr)
			assert.Empty(t, stdout.String())
			assert.Equal(t, 0, transport.GetTotalCallCount())
		})
	}
}
