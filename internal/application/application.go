package application

import (
	"github.com/dvdk01/page-change-monitor/internal/schema"
)

// Application presents the results of one run. Rendering nothing means every
// page still matches its baseline.
type Application interface {
	Render(results []schema.CheckResult) error
}
