package atlas

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the base URL of the atlas website
	DefaultBaseURL = "https://screening.iarc.fr"

	// ListEndpoint is the endpoint serving the paginated case listing
	ListEndpoint = "/atlascolpodiag_list.php"
)

// ListURL constructs the list-page URL for a final-diagnosis filter and a
// set of excluded diagnosis codes. The exclusion list is encoded the way
// the site itself does, as a single comma-prefixed query value.
func ListURL(baseURL, diagnosisCode string, excludedCodes []string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	params := url.Values{}
	params.Set("FinalDiag", diagnosisCode)
	if len(excludedCodes) > 0 {
		params.Set("e", ","+strings.Join(excludedCodes, ","))
	}

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), ListEndpoint, params.Encode())
}

// ResolveURL resolves a possibly relative href against the base URL and
// returns the absolute form. Returns "" when either part does not parse.
func ResolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
