package http

import "strings"

// ParseHeaderString parses custom headers given as
// "name=value|name=value". A backslash-escaped pipe ("\|") is kept as a
// literal pipe inside a value. Pairs without "=" or with an empty name
// are skipped. Names and values are trimmed of surrounding spaces.
func ParseHeaderString(s string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range splitUnescaped(s, '|') {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers
}

// splitUnescaped splits s on sep, treating a backslash-escaped sep as a
// literal character.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == sep:
			b.WriteByte(sep)
			i++
		case s[i] == sep:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(s[i])
		}
	}
	return append(parts, b.String())
}

func isReservedHeader(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, "User-Agent") || strings.EqualFold(name, "Accept")
}
