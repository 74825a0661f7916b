package processor

import (
	"context"
	"sync"

	"github.com/dvdk01/page-change-monitor/internal/application"
	"github.com/dvdk01/page-change-monitor/internal/monitor"
	"github.com/dvdk01/page-change-monitor/internal/schema"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// Workers bounds the number of pages checked at once. Values below 2
	// check pages one at a time in list order.
	Workers int
}

type processor struct {
	monitors    []monitor.Monitor
	application application.Application
	logger      log.FieldLogger
	workers     int
}

func New(monitors []monitor.Monitor, display application.Application, logger log.FieldLogger, opts Options) *processor {
	return &processor{
		monitors:    monitors,
		application: display,
		logger:      logger,
		workers:     opts.Workers,
	}
}

// Run checks every page and renders the results in list order. A failing
// page never stops the others from being checked.
func (p *processor) Run(ctx context.Context) ([]schema.CheckResult, error) {
	var results []schema.CheckResult
	if p.workers <= 1 || len(p.monitors) <= 1 {
		results = p.runSerial(ctx)
	} else {
		results = p.runParallel(ctx)
	}

	for _, result := range results {
		p.logResult(result)
	}

	summary := schema.Summarize(results)
	p.logger.WithFields(log.Fields{
		"total":     summary.Total,
		"unchanged": summary.Unchanged,
		"changed":   summary.Changed,
		"failed":    summary.Failed,
	}).Info("check finished")

	if err := p.application.Render(results); err != nil {
		return results, err
	}
	return results, nil
}

func (p *processor) runSerial(ctx context.Context) []schema.CheckResult {
	results := make([]schema.CheckResult, len(p.monitors))
	for i, mon := range p.monitors {
		p.logger.WithField("page", mon.Page().Name).Debug("processing page")
		results[i] = mon.Check(ctx)
	}
	return results
}

func (p *processor) runParallel(ctx context.Context) []schema.CheckResult {
	results := make([]schema.CheckResult, len(p.monitors))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, mon := range p.monitors {
		wg.Add(1)
		go func(i int, mon monitor.Monitor) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.logger.WithField("page", mon.Page().Name).Debug("processing page")
			results[i] = mon.Check(ctx)
		}(i, mon)
	}

	wg.Wait()
	return results
}

func (p *processor) logResult(result schema.CheckResult) {
	entry := p.logger.WithFields(log.Fields{
		"page":     result.Name,
		"status":   result.Status.String(),
		"duration": result.Duration,
	})
	if result.Error != nil {
		entry.WithError(result.Error).Warn("could not check page")
		return
	}
	entry.Debug("page checked")
}
