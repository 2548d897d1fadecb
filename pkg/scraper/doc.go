// Package scraper orchestrates the case collection run.
//
// The collector owns no extraction logic of its own: it sequences the
// network client, the parsers and the politeness limiter, and applies
// the partial-failure policy. One bad detail page never aborts the run;
// only a failed list-page fetch is fatal, because it leaves nothing to
// iterate over.
package scraper
