package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// AtlasClient defines the network operations the collector depends on
type AtlasClient interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}
