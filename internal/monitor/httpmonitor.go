package monitor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dvdk01/page-change-monitor/internal/page"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	log "github.com/sirupsen/logrus"
)

type pageMonitor struct {
	client *http.Client
	page   *page.Page
	logger log.FieldLogger
}

func NewMonitor(client *http.Client, p *page.Page, logger log.FieldLogger) *pageMonitor {
	if client == nil {
		client = http.DefaultClient
	}
	return &pageMonitor{
		client: client,
		page:   p,
		logger: logger.WithFields(log.Fields{"page": p.Name, "url": p.Href}),
	}
}

func (m *pageMonitor) Page() *page.Page {
	return m.page
}

func (m *pageMonitor) Monitor(ctx context.Context) (bool, error) {
	matched, _, err := m.fetchAndCompare(ctx)
	return matched, err
}

func (m *pageMonitor) Check(ctx context.Context) schema.CheckResult {
	result := schema.CheckResult{
		Name:    m.page.Name,
		Href:    m.page.Href,
		Compare: m.page.Compare.Kind(),
	}

	start := time.Now()
	matched, observed, err := m.fetchAndCompare(ctx)
	result.Duration = time.Since(start)
	result.Observed = observed

	switch {
	case err != nil:
		result.Status = schema.Failed
		result.Error = err
	case matched:
		result.Status = schema.Unchanged
	default:
		result.Status = schema.Changed
	}

	return result
}

func (m *pageMonitor) fetchAndCompare(ctx context.Context) (bool, string, error) {
	m.logger.Debug("fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.page.Href, nil)
	if err != nil {
		return false, "", err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body) //nolint
		resp.Body.Close()              //nolint
	}()

	strategy := m.page.Compare
	observed, err := strategy.Observe(resp)
	if err != nil {
		var statusErr *schema.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.URL == "" {
			statusErr.URL = m.page.Href
		}
		return false, "", err
	}

	m.logger.WithField(strategy.Kind(), observed).Debug("observed page fingerprint")

	return observed == strategy.Expected(), observed, nil
}
