// Package compare decides whether a fetched page still matches its recorded
// fingerprint.
package compare

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/dvdk01/page-change-monitor/internal/schema"
)

const (
	KindEtag   = "etag"
	KindSHA512 = "sha512"

	etagHeader = "ETag"
)

// Strategy is implemented only by ByEtag and ByContentHash.
type Strategy interface {
	// Observe returns the fingerprint of resp that this strategy compares.
	Observe(resp *http.Response) (string, error)
	// Evaluate reports whether resp still matches the expected fingerprint.
	Evaluate(resp *http.Response) (bool, error)
	Kind() string
	Expected() string

	sealed()
}

type ByEtag string

func (e ByEtag) Observe(resp *http.Response) (string, error) {
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	values := resp.Header.Values(etagHeader)
	if len(values) == 0 {
		return "", &schema.MissingHeaderError{URL: requestURL(resp), Header: etagHeader}
	}
	return values[0], nil
}

func (e ByEtag) Evaluate(resp *http.Response) (bool, error) {
	return evaluate(e, resp)
}

func (e ByEtag) Kind() string     { return KindEtag }
func (e ByEtag) Expected() string { return string(e) }
func (ByEtag) sealed()            {}

type ByContentHash string

// Observe hashes the whole body and puts an identical reader back in place,
// so the response can be observed again.
func (h ByContentHash) Observe(resp *http.Response) (string, error) {
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var body []byte
	if resp.Body != nil {
		var err error
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read response body: %w", err)
		}
		resp.Body.Close() //nolint
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	return Sum(body), nil
}

func (h ByContentHash) Evaluate(resp *http.Response) (bool, error) {
	return evaluate(h, resp)
}

func (h ByContentHash) Kind() string     { return KindSHA512 }
func (h ByContentHash) Expected() string { return string(h) }
func (ByContentHash) sealed()            {}

// Sum returns the lowercase hex SHA-512 digest of body.
func Sum(body []byte) string {
	sum := sha512.Sum512(body)
	return hex.EncodeToString(sum[:])
}

// FromRecord builds the strategy named by exactly one key of record.
func FromRecord(record schema.CompareRecord) (Strategy, error) {
	switch {
	case record.Etag != nil && record.SHA512 != nil:
		return nil, &schema.ConfigurationError{Field: "compare", Reason: "both etag and sha512 are set, expected exactly one"}
	case record.Etag != nil:
		return ByEtag(*record.Etag), nil
	case record.SHA512 != nil:
		return ByContentHash(*record.SHA512), nil
	default:
		return nil, &schema.ConfigurationError{Field: "compare", Reason: "neither etag nor sha512 is set, expected exactly one"}
	}
}

func evaluate(s Strategy, resp *http.Response) (bool, error) {
	observed, err := s.Observe(resp)
	if err != nil {
		return false, err
	}
	return observed == s.Expected(), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &schema.HTTPStatusError{
			URL:        requestURL(resp),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	return nil
}

func requestURL(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}
