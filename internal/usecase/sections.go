package usecase

import (
	"regexp"
	"strings"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/narrative"
)

// headingPattern captures each <h2> heading. Bodies are sliced between
// consecutive heading matches rather than captured by the pattern itself.
var headingPattern = regexp.MustCompile(`(?s)<h2>(.*?)</h2>`)

// SplitSections breaks generated HTML into a heading-to-body map. Each
// body runs from the end of its heading to the start of the next heading,
// or to the end of the document for the last one. Text before the first
// heading is discarded. When the same heading appears more than once the
// last body wins.
func SplitSections(html string) narrative.Sections {
	matches := headingPattern.FindAllStringSubmatchIndex(html, -1)
	sections := make(narrative.Sections, len(matches))
	for i, m := range matches {
		title := strings.TrimSpace(html[m[2]:m[3]])
		end := len(html)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections[title] = strings.TrimSpace(html[m[1]:end])
	}
	return sections
}
