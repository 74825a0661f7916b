package application

import (
	"fmt"
	"io"

	"github.com/dvdk01/page-change-monitor/internal/schema"
)

type cliApplication struct {
	out io.Writer
}

func NewCLIApplication(out io.Writer) *cliApplication {
	return &cliApplication{out: out}
}

func (ca *cliApplication) Render(results []schema.CheckResult) error {
	for _, result := range results {
		var err error
		switch result.Status {
		case schema.Changed:
			_, err = fmt.Fprintf(ca.out, "---- %s ----\nPage for %s does not match saved state.\nCheck %s for changes.\n",
				result.Name, result.Name, result.Href)
		case schema.Failed:
			_, err = fmt.Fprintf(ca.out, "---- %s ----\nCould not check %s (%s): %v\n",
				result.Name, result.Name, result.Href, result.Error)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
