package monitor

import (
	"context"

	"github.com/dvdk01/page-change-monitor/internal/page"
	"github.com/dvdk01/page-change-monitor/internal/schema"
)

type Monitor interface {
	Page() *page.Page

	// Monitor fetches the page once and reports whether it still matches its baseline.
	Monitor(ctx context.Context) (bool, error)

	Check(ctx context.Context) schema.CheckResult
}
