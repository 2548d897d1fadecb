package scraper

import (
	"context"
	"errors"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/ratelimit"
)

// Scraper drives the two-phase extraction: one list-page pass producing
// stubs, then one detail-page pass per stub. Execution is strictly
// sequential; the injected limiter spaces the detail fetches.
type Scraper struct {
	client  AtlasClient
	limiter ratelimit.Limiter
	baseURL string
	logger  logger.Logger
}

// New creates a new Scraper instance
func New(client AtlasClient, limiter ratelimit.Limiter, baseURL string, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{
		client:  client,
		limiter: limiter,
		baseURL: baseURL,
		logger:  log,
	}
}

// Run fetches the list page and then every linked detail page, returning
// the complete case set in list order.
//
// A failed list fetch ends the run with an empty set since there is
// nothing to iterate. A failed detail fetch only degrades that one case
// to its stub form; the batch always continues.
func (s *Scraper) Run(ctx context.Context, listURL string) ([]atlas.Case, error) {
	s.logger.WithField("url", listURL).Info("fetching list page")

	doc, err := s.client.GetDocument(ctx, listURL)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch list page")
		return nil, err
	}

	stubs, err := atlas.ParseListPage(doc, s.baseURL)
	if err != nil {
		if errors.Is(err, atlas.ErrNoCaseTable) {
			s.logger.Warn("no case table found on list page")
			return nil, nil
		}
		return nil, err
	}

	s.logger.WithField("count", len(stubs)).Info("cases found on list page")

	records := make([]atlas.Case, 0, len(stubs))
	for i, stub := range stubs {
		s.logger.InfoWithFields("processing case", map[string]interface{}{
			"index":       i + 1,
			"total":       len(stubs),
			"case_number": stub.CaseNumber,
		})

		if stub.DetailLink == "" {
			s.logger.WithField("case_number", stub.CaseNumber).
				Warn("case has no detail link, keeping list-page fields only")
			records = append(records, stub.Record())
			continue
		}

		records = append(records, s.collectDetail(ctx, stub))

		if err := s.limiter.Wait(ctx); err != nil {
			return records, err
		}
	}

	return records, nil
}

// collectDetail fetches and parses one detail page, degrading to the
// stub's fields when the fetch fails.
func (s *Scraper) collectDetail(ctx context.Context, stub atlas.CaseStub) atlas.Case {
	doc, err := s.client.GetDocument(ctx, stub.DetailLink)
	if err != nil {
		s.logger.WarnWithFields("failed to fetch detail page, case kept unenriched", map[string]interface{}{
			"case_number": stub.CaseNumber,
			"url":         stub.DetailLink,
			"error":       err.Error(),
		})
		return stub.Record()
	}

	record := atlas.ParseDetailPage(doc, s.baseURL, stub)

	s.logger.DebugWithFields("case enriched", map[string]interface{}{
		"case_number": record.CaseNumber,
		"images":      len(record.Images),
	})

	return record
}
