// Package export serializes collected case records into a flat CSV
// summary, one row per case with an image count in place of the gallery.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
)

// Header is the fixed column set of the CSV summary
var Header = []string{
	"case_number",
	"case_id",
	"age",
	"hpv_status",
	"provisional_diagnosis",
	"histopathology_diagnosis",
	"management",
	"swede_score",
	"num_images",
	"detail_link",
}

// WriteCSV writes one row per record to the given path. An empty record
// set writes nothing at all; a notice is logged and nil returned.
func WriteCSV(records []atlas.Case, path string) error {
	if len(records) == 0 {
		logger.Warn("no cases to save, skipping CSV export")
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.CaseNumber,
			record.CaseID,
			record.Age,
			record.HPVStatus,
			record.ProvisionalDiagnosis,
			record.HistopathologyDiagnosis,
			record.Management,
			record.SwedeScore,
			strconv.Itoa(len(record.Images)),
			record.DetailLink,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for case %s: %w", record.CaseNumber, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"path":  path,
		"cases": len(records),
	}).Info("CSV export written")

	return nil
}
