// Package metadata renders the human-readable per-case summary stored
// alongside the downloaded images.
package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
)

// Render builds the plain-text metadata summary for one case: every
// scalar field followed by the enumerated image manifest. The manifest
// lists every gallery image, including ones whose download later fails.
func Render(record atlas.Case) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Case Number: %s\n", record.CaseNumber)
	fmt.Fprintf(&b, "Case ID: %s\n", record.CaseID)
	fmt.Fprintf(&b, "Age: %s\n", record.Age)
	fmt.Fprintf(&b, "HPV Status: %s\n", record.HPVStatus)
	fmt.Fprintf(&b, "Provisional Diagnosis: %s\n", record.ProvisionalDiagnosis)
	fmt.Fprintf(&b, "Histopathology Diagnosis: %s\n", record.HistopathologyDiagnosis)
	fmt.Fprintf(&b, "Management: %s\n", record.Management)
	fmt.Fprintf(&b, "Swede Score: %s\n", record.SwedeScore)
	fmt.Fprintf(&b, "Detail Link: %s\n", record.DetailLink)
	b.WriteString("\nImages:\n")
	for _, img := range record.Images {
		fmt.Fprintf(&b, "  %d. %s: %s\n", img.Order, img.Stage, img.URL)
	}

	return b.String()
}

// Write renders the metadata summary and writes it to path
func Write(record atlas.Case, path string) error {
	if err := os.WriteFile(path, []byte(Render(record)), 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
