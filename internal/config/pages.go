package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvdk01/page-change-monitor/internal/page"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	"github.com/dvdk01/page-change-monitor/internal/validator"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the page file format from its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot infer page file format from '%s', use .json, .yaml or .yml", path)
	}
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown page file format '%s'", s)
	}
}

// LoadPages decodes an ordered list of page records. Unknown keys are errors.
func LoadPages(r io.Reader, format Format) ([]schema.PageRecord, error) {
	var records []schema.PageRecord

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON page list: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML page list: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown page file format '%s'", format)
	}

	return records, nil
}

// LoadPagesFile reads the page list at path. The path "-" reads stdin in the
// given format.
func LoadPagesFile(path string, format Format) ([]schema.PageRecord, error) {
	if path == "-" {
		if format == "" {
			return nil, errors.New("reading pages from stdin requires an explicit format")
		}
		return LoadPages(os.Stdin, format)
	}

	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page file: %w", err)
	}

	return LoadPages(bytes.NewReader(data), format)
}

// BuildPages turns every record into a page. All invalid records are
// reported together and no pages are returned if any of them is invalid.
func BuildPages(records []schema.PageRecord, v *validator.PageValidator) ([]*page.Page, error) {
	pages := make([]*page.Page, 0, len(records))
	var errs []error

	for i, record := range records {
		p, err := page.FromRecord(i, record, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pages = append(pages, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pages, nil
}
