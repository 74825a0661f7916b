package page

import (
	"errors"

	"github.com/dvdk01/page-change-monitor/internal/compare"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	"github.com/dvdk01/page-change-monitor/internal/validator"
)

var urlValidator = validator.NewURLValidator()

// Page is a named URL paired with the strategy that decides whether it changed.
type Page struct {
	Name    string
	Href    string
	Compare compare.Strategy
}

func New(name, href string, strategy compare.Strategy) (*Page, error) {
	if name == "" {
		return nil, &schema.ConfigurationError{Page: href, Field: "name", Reason: "is required"}
	}
	if err := urlValidator.ValidateURL(href); err != nil {
		return nil, &schema.ConfigurationError{Page: name, Field: "href", Reason: "must be an http or https URL"}
	}
	if strategy == nil {
		return nil, &schema.ConfigurationError{Page: name, Field: "compare", Reason: "is required"}
	}

	return &Page{
		Name:    name,
		Href:    href,
		Compare: strategy,
	}, nil
}

// FromRecord validates record and builds the page it describes.
func FromRecord(index int, record schema.PageRecord, v *validator.PageValidator) (*Page, error) {
	if err := v.ValidateRecord(index, record); err != nil {
		return nil, err
	}

	strategy, err := compare.FromRecord(record.Compare)
	if err != nil {
		var cfgErr *schema.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Page = record.Name
		}
		return nil, err
	}

	return New(record.Name, record.Href, strategy)
}
