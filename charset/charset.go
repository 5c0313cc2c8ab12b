// Package charset normalizes raw tag values to UTF-8 text.
// Encodings are looked up by their WHATWG labels through
// golang.org/x/net/html/charset and decoded with golang.org/x/text.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical encoding. Values declared as UTF-8 are validated
// rather than transcoded.
const UTF8 = "utf-8"

// Transcode converts raw from the named encoding to UTF-8.
// It reports false when the name is not a known encoding label or when raw
// contains bytes the encoding cannot decode.
func Transcode(raw, name string) (string, bool) {
	enc, _ := charset.Lookup(name)
	if enc == nil {
		return "", false
	}
	out, _, err := transform.String(enc.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	// x/text decoders substitute U+FFFD for invalid input instead of failing.
	if strings.Count(out, string(utf8.RuneError)) > strings.Count(raw, string(utf8.RuneError)) {
		return "", false
	}
	return out, true
}

// Normalize turns a raw tag value into UTF-8 text with character
// references decoded. name is the resolved page encoding; an empty name
// means none was found and raw must already be valid UTF-8.
// It reports false when no usable text can be produced, including when the
// decoded value is empty.
func Normalize(raw, name string) (string, bool) {
	var text string
	if name != "" && name != UTF8 {
		var ok bool
		if text, ok = Transcode(raw, name); !ok {
			return "", false
		}
	} else {
		if !utf8.ValidString(raw) {
			return "", false
		}
		text = raw
	}

	text = html.UnescapeString(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// Apply normalizes every value of tags in place. Values that cannot be
// normalized are replaced by their fallback, or nil when the key has none.
func Apply(tags map[string]*string, name string, fallbacks map[string]string) {
	for key, raw := range tags {
		if raw != nil {
			if text, ok := Normalize(*raw, name); ok {
				tags[key] = &text
				continue
			}
		}
		if fb, ok := fallbacks[key]; ok {
			tags[key] = &fb
		} else {
			tags[key] = nil
		}
	}
}
