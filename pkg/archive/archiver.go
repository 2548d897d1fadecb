// Package archive materializes collected case records on disk: one
// directory per case holding a plain-text metadata summary and the
// downloaded gallery images.
package archive

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/metadata"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/ratelimit"
)

// stageSanitizer strips characters that would break filenames out of
// stage labels.
var stageSanitizer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// ImageDownloader defines the network operation the archiver depends on
type ImageDownloader interface {
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

// Stats reports the outcome of one archive run
type Stats struct {
	Cases      int
	Attempted  int
	Downloaded int
}

// Archiver downloads case images into a per-case directory tree
type Archiver struct {
	client  ImageDownloader
	limiter ratelimit.Limiter
	root    string
	logger  logger.Logger
}

// New creates a new Archiver rooted at the given directory
func New(client ImageDownloader, limiter ratelimit.Limiter, root string, log logger.Logger) *Archiver {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Archiver{
		client:  client,
		limiter: limiter,
		root:    root,
		logger:  log,
	}
}

// Archive writes the directory tree for every record and downloads each
// gallery image sequentially. Per-image failures are logged and skipped;
// the returned stats always reflect both attempted and completed
// downloads. Only a filesystem failure on the archive root or a
// cancelled context ends the run early.
func (a *Archiver) Archive(ctx context.Context, records []atlas.Case) (Stats, error) {
	var stats Stats

	if err := os.MkdirAll(a.root, 0755); err != nil {
		return stats, fmt.Errorf("failed to create archive root: %w", err)
	}

	total := 0
	for _, record := range records {
		total += len(record.Images)
	}
	a.logger.InfoWithFields("starting image archive", map[string]interface{}{
		"cases":  len(records),
		"images": total,
	})

	for _, record := range records {
		caseDir := filepath.Join(a.root, caseDirName(record))
		if err := os.MkdirAll(caseDir, 0755); err != nil {
			a.logger.WarnWithFields("failed to create case directory, skipping case", map[string]interface{}{
				"case_number": record.CaseNumber,
				"error":       err.Error(),
			})
			continue
		}
		stats.Cases++

		if err := metadata.Write(record, filepath.Join(caseDir, "metadata.txt")); err != nil {
			a.logger.WithError(err).WithField("case_number", record.CaseNumber).
				Warn("failed to write metadata file")
		}

		for _, img := range record.Images {
			stats.Attempted++

			a.logger.InfoWithFields("downloading image", map[string]interface{}{
				"progress":    fmt.Sprintf("%d/%d", stats.Attempted, total),
				"case_number": record.CaseNumber,
				"stage":       img.Stage,
			})

			data, err := a.client.DownloadImage(ctx, img.URL)
			if err != nil {
				a.logger.WarnWithFields("failed to download image, skipping", map[string]interface{}{
					"url":   img.URL,
					"error": err.Error(),
				})
				continue
			}

			if err := saveFile(filepath.Join(caseDir, ImageFilename(img)), data); err != nil {
				a.logger.WithError(err).WithField("url", img.URL).
					Warn("failed to save image, skipping")
				continue
			}
			stats.Downloaded++

			if err := a.limiter.Wait(ctx); err != nil {
				return stats, err
			}
		}
	}

	a.logger.InfoWithFields("image archive complete", map[string]interface{}{
		"downloaded": stats.Downloaded,
		"attempted":  stats.Attempted,
	})

	return stats, nil
}

// caseDirName names the per-case directory after the derived case
// identifier, falling back to the case number.
func caseDirName(record atlas.Case) string {
	id := record.CaseID
	if id == "" {
		id = record.CaseNumber
	}
	return "case_" + id
}

// ImageFilename builds the deterministic filename for one gallery image:
// the 1-based order, the sanitized stage label and the extension carried
// by the URL (defaulting to .jpg).
func ImageFilename(img atlas.Image) string {
	return fmt.Sprintf("%d_%s%s", img.Order, stageSanitizer.Replace(img.Stage), extensionFromURL(img.URL))
}

// extensionFromURL returns the file extension of the URL path, or ".jpg"
// when the URL carries none.
func extensionFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return ".jpg"
}

// saveFile writes data through a temporary file and renames it into
// place, so an interrupted download never leaves a truncated image.
func saveFile(filename string, data []byte) error {
	tempFile := filename + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
