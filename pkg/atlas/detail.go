package atlas

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/htmlutil"
	"github.com/naghim/colposcopy-digital-atlas-dataset/pkg/logger"
)

// Labels keying the summary-table extraction rules. The markup carries no
// ids or classes around these, only the literal label text.
const (
	provisionalLabel = "Provisional diagnosis:"
	managementLabel  = "Management:"
	swedeScoreLabel  = "Swede score:"

	// swedeScoreColor is the highlight color the site applies to the
	// score value element.
	swedeScoreColor = "#FFAB19"

	// thumbnailSelector identifies one gallery thumbnail container.
	thumbnailSelector = "div.col-md-13.thumbnail"

	// galleryAnchorSelector identifies the enlargeable-image anchor
	// inside a thumbnail.
	galleryAnchorSelector = "a.fancybox"
)

// ParseDetailPage extracts the full case record from a detail page. Every
// extraction rule is independent and best-effort: a rule that finds
// nothing leaves its field empty (or "Unknown" for the positional
// demographic rules) and never affects sibling rules. When the content
// container itself is missing, the stub is returned unenriched.
func ParseDetailPage(doc *goquery.Document, baseURL string, stub CaseStub) Case {
	record := stub.Record()

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		logger.WithField("case_number", stub.CaseNumber).
			Warn("could not find content container on detail page")
		return record
	}

	record.Age, record.HPVStatus = extractAgeAndHPV(content)
	record.Images = extractImages(content, baseURL)
	record.ProvisionalDiagnosis = extractLabeledField(content, provisionalLabel)
	record.Management = extractLabeledField(content, managementLabel)
	record.SwedeScore = extractSwedeScore(content)

	return record
}

// extractAgeAndHPV applies the positional rule for the demographic
// fields: the second and third styled label elements in the container
// label age and HPV status, and the value is the bolded text nearest
// after each label.
func extractAgeAndHPV(content *goquery.Selection) (age, hpvStatus string) {
	age, hpvStatus = UnknownValue, UnknownValue

	fonts := content.Find("font").Nodes
	if len(fonts) > 1 {
		age = boldTextAfter(fonts[1])
	}
	if len(fonts) > 2 {
		hpvStatus = boldTextAfter(fonts[2])
	}
	return age, hpvStatus
}

// boldTextAfter returns the text of the nearest b element following n,
// or the Unknown placeholder when there is none.
func boldTextAfter(n *html.Node) string {
	b := htmlutil.NextElement(n, "b")
	if b == nil {
		return UnknownValue
	}
	text := htmlutil.CleanNodeText(b)
	if text == "" {
		return UnknownValue
	}
	return text
}

// extractImages scans the gallery thumbnails in document order. A
// thumbnail without a qualifying anchor contributes nothing; qualifying
// images are numbered contiguously from 1.
func extractImages(content *goquery.Selection, baseURL string) []Image {
	var images []Image

	content.Find(thumbnailSelector).Each(func(_ int, thumb *goquery.Selection) {
		anchor := thumb.Find(galleryAnchorSelector).First()
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			return
		}

		image := Image{
			URL:   ResolveURL(baseURL, href),
			Stage: UnknownValue,
			Order: len(images) + 1,
		}
		if title, ok := anchor.Attr("title"); ok {
			image.Description = title
		}

		// The stage caption is the nearest styled element after the
		// thumbnail that carries a bolded label.
		if len(thumb.Nodes) > 0 {
			if stageFont := htmlutil.NextElement(thumb.Nodes[0], "font"); stageFont != nil {
				if b := htmlutil.FindDescendant(stageFont, "b"); b != nil {
					if text := htmlutil.CleanNodeText(b); text != "" {
						image.Stage = text
					}
				}
			}
		}

		images = append(images, image)
	})

	return images
}

// extractLabeledField locates the styled element whose text matches the
// given literal label and returns the bolded text of the nearest
// following table cell, falling back to the cell's raw text. Returns ""
// when the label or the cell is absent.
func extractLabeledField(content *goquery.Selection, label string) string {
	labelNode := findFontWithText(content, label, false)
	if labelNode == nil {
		return ""
	}

	td := htmlutil.NextElement(labelNode, "td")
	if td == nil {
		return ""
	}

	if b := htmlutil.FindDescendant(td, "b"); b != nil {
		if text := htmlutil.CleanNodeText(b); text != "" {
			return text
		}
	}
	return htmlutil.CleanNodeText(td)
}

// extractSwedeScore scans every styled element for the score label and
// reads the value from the nearest following element carrying the
// highlight color. When the label occurs more than once, the last
// occurrence wins.
func extractSwedeScore(content *goquery.Selection) string {
	labelNode := findFontWithText(content, swedeScoreLabel, true)
	if labelNode == nil {
		return ""
	}

	valueNode := htmlutil.NextElementWithAttr(labelNode, "font", "color", swedeScoreColor)
	return htmlutil.CleanNodeText(valueNode)
}

// findFontWithText returns the first (or last) font node within content
// whose text contains the given label, or nil.
func findFontWithText(content *goquery.Selection, label string, last bool) *html.Node {
	var match *html.Node
	for _, n := range content.Find("font").Nodes {
		if !strings.Contains(htmlutil.GetText(n), label) {
			continue
		}
		match = n
		if !last {
			return match
		}
	}
	return match
}
