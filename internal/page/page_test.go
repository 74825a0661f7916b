package page

import (
	"errors"
	"testing"

	"github.com/dvdk01/page-change-monitor/internal/compare"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	"github.com/dvdk01/page-change-monitor/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		pageName  string
		href      string
		strategy  compare.Strategy
		wantField string
	}{
		// Test case for a well formed page
		// Verifies that all fields are kept as given
		{
			name:     "valid page",
			pageName: "Docs",
			href:     "https://example.com/docs",
			strategy: compare.ByEtag(`"abf1"`),
		},
		// Test case for a page without a name
		// Verifies that the display label is required
		{
			name:      "empty name",
			href:      "https://example.com/docs",
			strategy:  compare.ByEtag(`"abf1"`),
			wantField: "name",
		},
		// Test case for a relative href
		// Verifies that the target must be an absolute http(s) URL
		{
			name:      "relative href",
			pageName:  "Docs",
			href:      "/docs",
			strategy:  compare.ByEtag(`"abf1"`),
			wantField: "href",
		},
		// Test case for a file URL
		// Verifies that non-http schemes are rejected
		{
			name:      "file href",
			pageName:  "Docs",
			href:      "file:///etc/passwd",
			strategy:  compare.ByEtag(`"abf1"`),
			wantField: "href",
		},
		// Test case for a page without a strategy
		// Verifies that a page always owns a comparison strategy
		{
			name:      "nil strategy",
			pageName:  "Docs",
			href:      "https://example.com/docs",
			wantField: "compare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pageName, tt.href, tt.strategy)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.pageName, p.Name)
				assert.Equal(t, tt.href, p.Href)
				assert.Equal(t, tt.strategy, p.Compare)
				return
			}

			var cfgErr *schema.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Nil(t, p)
		})
	}
}

func TestFromRecord(t *testing.T) {
	etag := `"abf1-5f7917bea1fed-gzip"`
	digest := schema.Digest("309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f")
	v := validator.NewPageValidator()

	// Test case for an etag record
	// Verifies that the record is turned into a page with the etag variant
	p, err := FromRecord(0, schema.PageRecord{
		Name:    "Docs",
		Href:    "https://example.com/docs",
		Compare: schema.CompareRecord{Etag: &etag},
	}, v)
	require.NoError(t, err)
	assert.Equal(t, "Docs", p.Name)
	assert.Equal(t, compare.ByEtag(etag), p.Compare)

	// Test case for a sha512 record
	// Verifies that the record is turned into a page with the content hash variant
	p, err = FromRecord(1, schema.PageRecord{
		Name:    "Blog",
		Href:    "https://example.com/blog",
		Compare: schema.CompareRecord{SHA512: &digest},
	}, v)
	require.NoError(t, err)
	assert.Equal(t, compare.ByContentHash(digest), p.Compare)

	// Test case for a record with both keys
	// Verifies that construction fails with a ConfigurationError naming the page
	_, err = FromRecord(2, schema.PageRecord{
		Name:    "Both",
		Href:    "https://example.com/both",
		Compare: schema.CompareRecord{Etag: &etag, SHA512: &digest},
	}, v)
	var cfgErr *schema.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Both", cfgErr.Page)

	// Test case for a record with neither key
	// Verifies that the ambiguous state never reaches evaluation
	_, err = FromRecord(3, schema.PageRecord{
		Name: "Neither",
		Href: "https://example.com/neither",
	}, v)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Neither", cfgErr.Page)
}
