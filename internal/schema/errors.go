package schema

import (
	"fmt"
	"net/http"
)

// ConfigurationError reports a malformed page or comparison record.
type ConfigurationError struct {
	Page   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration for page '%s': %s", e.Page, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for page '%s': field '%s': %s", e.Page, e.Field, e.Reason)
}

// HTTPStatusError is returned when a fetch ends with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("HTTP %d %s for URL '%s'", e.StatusCode, text, e.URL)
	}
	return fmt.Sprintf("HTTP %d for URL '%s'", e.StatusCode, e.URL)
}

type MissingHeaderError struct {
	URL    string
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("response from '%s' has no %s header", e.URL, e.Header)
}
