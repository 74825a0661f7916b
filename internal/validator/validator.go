package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dvdk01/page-change-monitor/internal/schema"
	"github.com/go-playground/validator/v10"
)

type URLValidator struct {
	validate *validator.Validate
}

func NewURLValidator() *URLValidator {
	v := validator.New()
	v.RegisterValidation("http_protocol", validateHTTPProtocol) //nolint:errcheck
	return &URLValidator{
		validate: v,
	}
}

func validateHTTPProtocol(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsedURL.Scheme == "http" || parsedURL.Scheme == "https"
}

func (v *URLValidator) ValidateURL(url string) error {
	type urlStruct struct {
		URL string `validate:"required,url,http_protocol"`
	}

	return v.validate.Struct(urlStruct{URL: url})
}

// PageValidator checks page records before any page is built from them.
type PageValidator struct {
	validate *validator.Validate
}

func NewPageValidator() *PageValidator {
	v := validator.New()
	v.RegisterValidation("http_protocol", validateHTTPProtocol) //nolint:errcheck
	v.RegisterStructValidation(validateCompareRecord, schema.CompareRecord{})
	return &PageValidator{
		validate: v,
	}
}

func validateCompareRecord(sl validator.StructLevel) {
	record := sl.Current().Interface().(schema.CompareRecord)
	if (record.Etag == nil) == (record.SHA512 == nil) {
		sl.ReportError(record, "compare", "Compare", "exactly_one", "etag|sha512")
	}
}

// ValidateRecord returns a *schema.ConfigurationError describing the first
// problem found in record. index is used to name pages without a name.
func (v *PageValidator) ValidateRecord(index int, record schema.PageRecord) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	page := record.Name
	if page == "" {
		page = fmt.Sprintf("#%d", index+1)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &schema.ConfigurationError{Page: page, Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &schema.ConfigurationError{
		Page:   page,
		Field:  fieldName(fe),
		Reason: describe(fe),
	}
}

func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		return "name"
	case "Href":
		return "href"
	case "Etag":
		return "compare.etag"
	case "SHA512":
		return "compare.sha512"
	default:
		return strings.ToLower(fe.Field())
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_protocol":
		return "must be an http or https URL"
	case "exactly_one":
		return "exactly one of etag or sha512 must be set"
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "hexadecimal":
		return "must be hex encoded"
	case "lowercase":
		return "must be lowercase hex"
	case "min":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed '%s' check", fe.Tag())
	}
}
