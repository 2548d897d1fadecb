package atlas

import (
	"path"
	"regexp"
)

// UnknownValue is the placeholder recorded when a positional heuristic
// finds no label or no value on the page.
const UnknownValue = "Unknown"

// caseIDPattern matches atlas image filenames of the form AABB0.jpg,
// where the leading uppercase letters are the case identifier.
var caseIDPattern = regexp.MustCompile(`^([A-Z]+)[0-9]+\.`)

// CaseStub is the partial record extracted from one list-page row.
type CaseStub struct {
	CaseNumber              string
	CaseID                  string
	HistopathologyDiagnosis string
	DetailLink              string
}

// Record promotes a stub to a full case record with no detail fields set.
func (s CaseStub) Record() Case {
	return Case{
		CaseNumber:              s.CaseNumber,
		CaseID:                  s.CaseID,
		HistopathologyDiagnosis: s.HistopathologyDiagnosis,
		DetailLink:              s.DetailLink,
	}
}

// Image describes one gallery image on a detail page.
type Image struct {
	URL         string
	Stage       string
	Description string
	Order       int
}

// Case is the complete record for one clinical case. CaseNumber is always
// present; every other textual field may be empty when the source markup
// did not yield a value.
type Case struct {
	CaseNumber              string
	CaseID                  string
	Age                     string
	HPVStatus               string
	ProvisionalDiagnosis    string
	HistopathologyDiagnosis string
	Management              string
	SwedeScore              string
	DetailLink              string
	Images                  []Image
}

// DeriveCaseID extracts the case identifier from an image source path,
// e.g. "thumbs/AABB0.jpg" yields "AABB". Returns "" when the filename
// does not follow the uppercase-letters+digits+extension convention.
func DeriveCaseID(imgSrc string) string {
	if imgSrc == "" {
		return ""
	}
	filename := path.Base(imgSrc)
	match := caseIDPattern.FindStringSubmatch(filename)
	if match == nil {
		return ""
	}
	return match[1]
}
