package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/atlas"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")

	records := []atlas.Case{
		{
			CaseNumber:              "1",
			CaseID:                  "AABB",
			Age:                     "34 years",
			HPVStatus:               "Positive",
			ProvisionalDiagnosis:    "LSIL",
			HistopathologyDiagnosis: "LSIL (CIN1)",
			Management:              "Follow-up",
			SwedeScore:              "4",
			DetailLink:              "https://example.org/detail/1",
			Images: []atlas.Image{
				{URL: "https://example.org/a.jpg", Stage: "After acetic acid", Order: 1},
				{URL: "https://example.org/b.jpg", Stage: "After Lugol's iodine", Order: 2},
			},
		},
		{
			CaseNumber:              "2",
			HistopathologyDiagnosis: "Normal",
		},
	}

	require.NoError(t, WriteCSV(records, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// Header plus one row per record.
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])

	assert.Equal(t, []string{
		"1", "AABB", "34 years", "Positive", "LSIL", "LSIL (CIN1)",
		"Follow-up", "4", "2", "https://example.org/detail/1",
	}, rows[1])

	// A record without images exports a zero count, not an empty field.
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "0", rows[2][8])
	assert.Equal(t, "", rows[2][1])
}

func TestWriteCSVEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")

	require.NoError(t, WriteCSV(nil, path))

	// Nothing is written for an empty record set.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV([]atlas.Case{{CaseNumber: "1"}}, filepath.Join(t.TempDir(), "missing", "cases.csv"))
	assert.Error(t, err)
}
