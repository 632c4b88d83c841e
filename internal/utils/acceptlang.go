package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// DetermineLocale resolves the response locale. An explicit query value wins
// over Accept-Language; anything unmatched falls back to def (or the first
// supported locale when def is not supported).
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	var (
		tags  []language.Tag
		names []string
	)
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		for _, n := range names {
			if n == s {
				return
			}
		}
		t, err := language.Parse(s)
		if err != nil {
			return
		}
		tags = append(tags, t)
		names = append(names, s)
	}
	// The matcher treats its first tag as the default.
	for _, s := range supported {
		if strings.EqualFold(s, def) {
			add(s)
		}
	}
	for _, s := range supported {
		add(s)
	}
	if len(names) == 0 {
		return "de"
	}
	matcher := language.NewMatcher(tags)

	pick := func(desired ...language.Tag) (string, bool) {
		if len(desired) == 0 {
			return "", false
		}
		_, idx, conf := matcher.Match(desired...)
		if conf == language.No {
			return "", false
		}
		return names[idx], true
	}

	if queryLang != "" {
		if t, err := language.Parse(queryLang); err == nil {
			if v, ok := pick(t); ok {
				return v
			}
		}
	}
	if acceptLang != "" {
		if desired, _, err := language.ParseAcceptLanguage(acceptLang); err == nil {
			if v, ok := pick(desired...); ok {
				return v
			}
		}
	}
	return names[0]
}
