package atlas

import (
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/htmlutil"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
)

// ErrNoCaseTable is returned when the list page carries no results table.
// Callers treat it as "zero cases", not as a failed run.
var ErrNoCaseTable = errors.New("no case table found on list page")

const (
	// contentSelector identifies the main content container on both the
	// list page and the detail pages.
	contentSelector = "div.col-sm-11"

	// listTableSelector identifies the results table within the content
	// container.
	listTableSelector = "table.table.table-striped.table-hover"
)

// ParseListPage extracts case stubs from one list page, in row order.
// Rows with fewer than five columns are skipped; a partially broken page
// still yields every well-formed row.
func ParseListPage(doc *goquery.Document, baseURL string) ([]CaseStub, error) {
	table := doc.Find(contentSelector).Find(listTableSelector).First()
	if table.Length() == 0 {
		return nil, ErrNoCaseTable
	}

	log := logger.GetLogger()
	var stubs []CaseStub

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// header row
			return
		}

		cols := row.Find("td")
		if cols.Length() < 5 {
			return
		}

		stub := CaseStub{
			CaseNumber: htmlutil.CleanText(cols.Eq(0).Text()),
		}

		// The diagnosis column usually styles its text with an inner
		// font element; fall back to the raw cell text.
		diagnosisCol := cols.Eq(4)
		if font := diagnosisCol.Find("font").First(); font.Length() > 0 {
			stub.HistopathologyDiagnosis = htmlutil.CleanText(font.Text())
		} else {
			stub.HistopathologyDiagnosis = htmlutil.CleanText(diagnosisCol.Text())
		}

		if src, ok := cols.Eq(1).Find("img").First().Attr("src"); ok {
			stub.CaseID = DeriveCaseID(src)
		}

		if href, ok := cols.Eq(1).Find("a").First().Attr("href"); ok {
			stub.DetailLink = ResolveURL(baseURL, href)
		}

		log.DebugWithFields("found case", map[string]interface{}{
			"case_number": stub.CaseNumber,
			"case_id":     stub.CaseID,
		})

		stubs = append(stubs, stub)
	})

	return stubs, nil
}
