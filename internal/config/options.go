package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	OutputNotice = "notice"
	OutputTable  = "table"
)

type LogOptions struct {
	Level  string `validate:"oneof=trace debug info warning warn error fatal panic"`
	Format string `validate:"oneof=text json"`
	// File, when set, receives a copy of the log in a rotated file.
	File       string
	MaxSizeMB  int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
}

type Options struct {
	PagesPath    string `validate:"required"`
	Format       string `validate:"omitempty,oneof=json yaml yml"`
	Log          LogOptions
	Timeout      time.Duration `validate:"gte=0"`
	Workers      int           `validate:"gte=1"`
	Output       string        `validate:"oneof=notice table"`
	ShowAll      bool
	FailOnChange bool
}

func DefaultOptions() Options {
	return Options{
		Log: LogOptions{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Workers: 1,
		Output:  OutputNotice,
	}
}

// Validate checks the run options and reports every invalid field at once.
func (o Options) Validate() error {
	o.Log.Level = strings.ToLower(o.Log.Level)
	o.Log.Format = strings.ToLower(o.Log.Format)

	err := validator.New().Struct(o)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' check (value '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}
