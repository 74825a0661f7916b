package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type PageRecord struct {
	Name    string        `json:"name" yaml:"name" validate:"required"`
	Href    string        `json:"href" yaml:"href" validate:"required,url,http_protocol"`
	Compare CompareRecord `json:"compare" yaml:"compare"`
}

// CompareRecord holds the baseline of a page. Exactly one key must be set.
type CompareRecord struct {
	Etag   *string `json:"etag,omitempty" yaml:"etag,omitempty" validate:"omitempty,min=1"`
	SHA512 *Digest `json:"sha512,omitempty" yaml:"sha512,omitempty" validate:"omitempty,len=128,hexadecimal,lowercase"`
}

// Digest is a hex encoded hash. It decodes from a single string or from a
// list of fragments, which are concatenated.
type Digest string

func (d *Digest) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*d = Digest(single)
		return nil
	}

	var fragments []string
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("digest must be a string or a list of strings: %w", err)
	}
	*d = Digest(strings.Join(fragments, ""))
	return nil
}

func (d *Digest) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var fragments []string
		if err := value.Decode(&fragments); err != nil {
			return fmt.Errorf("digest fragments: %w", err)
		}
		*d = Digest(strings.Join(fragments, ""))
		return nil
	}

	var single string
	if err := value.Decode(&single); err != nil {
		return fmt.Errorf("digest must be a string or a list of strings: %w", err)
	}
	*d = Digest(single)
	return nil
}

type Status int

const (
	Unchanged Status = iota
	Changed
	Failed
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type CheckResult struct {
	Name     string
	Href     string
	Compare  string
	Status   Status
	Observed string
	Duration time.Duration
	Error    error
}

type Summary struct {
	Total     int
	Unchanged int
	Changed   int
	Failed    int
}

func Summarize(results []CheckResult) Summary {
	summary := Summary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case Unchanged:
			summary.Unchanged++
		case Changed:
			summary.Changed++
		case Failed:
			summary.Failed++
		}
	}
	return summary
}

func (s Summary) HasChanges() bool {
	return s.Changed > 0
}

func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Clean reports whether every checked page still matches its baseline.
func (s Summary) Clean() bool {
	return !s.HasChanges() && !s.HasFailures()
}
