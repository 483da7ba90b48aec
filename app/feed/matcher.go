package feed

import "strings"

type Matcher struct {
	keywords Keywords
}

func NewMatcher(keywords Keywords) *Matcher {
	return &Matcher{keywords: keywords}
}

func (m *Matcher) Keywords() Keywords {
	return m.keywords
}

func (m *Matcher) Run(title string) Outcome {
	return Match(title, m.keywords.Desired, m.keywords.Undesired)
}

// Match checks the normalized title against undesired entries first, then
// desired ones. The first entry in list order that is a substring wins.
// Entries are compared as-is, so they must already be normalized.
func Match(title string, desired []string, undesired []string) Outcome {
	normalized := Normalize(title)

	if undesired != nil {
		if keyword, ok := firstContained(normalized, undesired); ok {
			return Outcome{Kind: RejectedByUndesired, Keyword: keyword}
		}
	}

	if keyword, ok := firstContained(normalized, desired); ok {
		return Outcome{Kind: Accepted, Keyword: keyword}
	}

	return Outcome{Kind: NoMatch}
}

func firstContained(value string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// ParseKeywords splits a comma-separated list and normalizes every entry.
// Entries that normalize to nothing are dropped.
func ParseKeywords(list string) []string {
	keywords := make([]string, 0)
	for _, part := range strings.Split(list, ",") {
		if keyword := Normalize(part); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}
