// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"regexp"

	"github.com/pdiddy/paperfetch/pkg/types"
)

var (
	jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	pairRe      = regexp.MustCompile(`(?s)"paper_name":\s*"([^"]+)".*?"paper_url":\s*"([^"]+)"`)
	urlRe       = regexp.MustCompile(`https?://[^\s"]+`)
	lastQuoteRe = regexp.MustCompile(`"([^"]+)"[^"]*$`)
)

// contextWindow is how far back from a URL to look for its title.
const contextWindow = 200

// ExtractPapers recovers paper name/URL pairs from a model response that is
// not valid JSON. Three passes, most to least structured: name/url pairs
// inside a fenced json block, the same pairs anywhere in the text, and
// finally bare URLs paired with the nearest preceding quoted string.
func ExtractPapers(text string) []types.RequestedPaper {
	if block := jsonBlockRe.FindStringSubmatch(text); block != nil {
		if found := pairMatches(block[1]); len(found) > 0 {
			return found
		}
	}

	if found := pairMatches(text); len(found) > 0 {
		return found
	}

	var found []types.RequestedPaper
	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		start := loc[0] - contextWindow
		if start < 0 {
			start = 0
		}
		title := lastQuoteRe.FindStringSubmatch(text[start:loc[0]])
		if title == nil {
			continue
		}
		found = append(found, types.RequestedPaper{
			Title:     title[1],
			SourceURL: text[loc[0]:loc[1]],
		})
	}
	return found
}

func pairMatches(text string) []types.RequestedPaper {
	var found []types.RequestedPaper
	for _, m := range pairRe.FindAllStringSubmatch(text, -1) {
		found = append(found, types.RequestedPaper{Title: m[1], SourceURL: m[2]})
	}
	return found
}
