package regexp

import (
	"regexp"
	"strings"
)

// The patterns deliberately mirror a simple scanner rather than an HTML
// tokenizer: name/property must come before content, values stop at the
// first double quote or '>', and single-quoted attributes are not matched.
var (
	metaTagPattern = regexp.MustCompile(`(?i)<\s*meta\s*(?:name|property)="?([^>"]*)"?\s*content="?([^>"]*)"?\s*/?\s*>`)
	titlePattern   = regexp.MustCompile(`(?is)<title(?:\s[^>]*)?>(.*?)</title>`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// ScanTags returns every <meta name|property="K" content="V"> tag found in
// html keyed by the lower-cased, trimmed name. Later tags overwrite earlier
// ones with the same key. Values are returned as found, undecoded.
func ScanTags(html string) map[string]string {
	tags := make(map[string]string)
	for _, m := range metaTagPattern.FindAllStringSubmatch(html, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		tags[key] = m[2]
	}
	return tags
}

// ScanTitle returns the contents of the first <title> element with runs of
// whitespace collapsed to a single space.
func ScanTitle(html string) (string, bool) {
	m := titlePattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(m[1], " ")), true
}
