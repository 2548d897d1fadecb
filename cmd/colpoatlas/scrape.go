package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/archive"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/config"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/export"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/ratelimit"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/scraper"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/ui"
)

var (
	// Scrape command flags
	listURLFlag   string
	diagnosisCode string
	csvFile       string
	imageDir      string
	requestDelay  time.Duration
	downloadAll   bool
	noDownload    bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect atlas cases, export a CSV summary and optionally archive images",
	Long: `Collect every case matching the configured final-diagnosis filter.

The list page is fetched once, then each case's detail page is fetched
sequentially with a politeness delay between requests. The collected set
is written to a CSV file; afterwards a single yes/no prompt gates the
image-download phase unless --download or --no-download is given.`,
	Example: `  # Collect cases for the default diagnosis filter
  colpoatlas scrape

  # A different diagnosis code and output locations
  colpoatlas scrape --diagnosis 06 --output cin3.csv --images cin3_images

  # Non-interactive: archive images without prompting
  colpoatlas scrape --download

  # Override the full list URL
  colpoatlas scrape --url "https://screening.iarc.fr/atlascolpodiag_list.php?FinalDiag=31&e=,0,1"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape()
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&listURLFlag, "url", "", "full list-page URL (overrides --diagnosis)")
	scrapeCmd.Flags().StringVarP(&diagnosisCode, "diagnosis", "d", "", "final diagnosis code to filter by")
	scrapeCmd.Flags().StringVarP(&csvFile, "output", "o", "", "CSV output file")
	scrapeCmd.Flags().StringVar(&imageDir, "images", "", "root directory for the image archive")
	scrapeCmd.Flags().DurationVar(&requestDelay, "delay", 0, "politeness delay between detail-page requests")
	scrapeCmd.Flags().BoolVar(&downloadAll, "download", false, "archive images without prompting")
	scrapeCmd.Flags().BoolVar(&noDownload, "no-download", false, "skip the image archive without prompting")
	scrapeCmd.MarkFlagsMutuallyExclusive("download", "no-download")
}

func runScrape() error {
	flags := map[string]interface{}{
		"diagnosis": diagnosisCode,
		"output":    csvFile,
		"images":    imageDir,
		"delay":     requestDelay,
		"log-level": logLevel,
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		return err
	}

	listURL := listURLFlag
	if listURL == "" {
		listURL = atlas.ListURL(cfg.Atlas.BaseURL, cfg.Atlas.DiagnosisCode, cfg.Atlas.ExcludedCodes)
	}

	ui.PrintHighlight("IARC Atlas of Colposcopy Scraper")
	ui.PrintInfo("List page", listURL)

	ctx := context.Background()
	client := atlas.NewClient(cfg.Atlas.RequestTimeout, cfg.Atlas.UserAgent, logger.GetLogger())

	s := scraper.New(
		client,
		ratelimit.NewInterval(cfg.RateLimit.RequestInterval),
		cfg.Atlas.BaseURL,
		logger.GetLogger(),
	)

	records, err := s.Run(ctx, listURL)
	if err != nil {
		ui.PrintError("Scrape failed", err.Error())
		return err
	}

	if len(records) == 0 {
		ui.PrintWarning("No cases were scraped.")
		return nil
	}

	ui.PrintInfo("Cases collected", fmt.Sprintf("%d", len(records)))

	if err := export.WriteCSV(records, cfg.Output.CSVFile); err != nil {
		ui.PrintError("CSV export failed", err.Error())
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Data saved to %s", cfg.Output.CSVFile))

	if !shouldDownload() {
		return nil
	}

	archiver := archive.New(
		client,
		ratelimit.NewInterval(cfg.RateLimit.DownloadInterval),
		cfg.Output.ImageDirectory,
		logger.GetLogger(),
	)

	stats, err := archiver.Archive(ctx, records)
	if err != nil {
		ui.PrintError("Image archive failed", err.Error())
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Download complete! %d/%d images downloaded successfully.",
		stats.Downloaded, stats.Attempted))
	return nil
}

// shouldDownload resolves the image-download decision from the flags,
// falling back to the interactive prompt.
func shouldDownload() bool {
	if downloadAll {
		return true
	}
	if noDownload {
		return false
	}
	return ui.Confirm(os.Stdin, "Do you want to download all images? (y/n): ")
}
