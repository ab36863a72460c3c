// Package render substitutes {{ name }} placeholders in document templates.
//
// The template body is trusted and copied through unchanged; every substituted
// value is escaped. Only &, < and > are escaped, so values must not be
// substituted into attribute contexts.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*([^}]+)\s*\}\}`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spaceRe       = regexp.MustCompile(`\s+`)

	escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Values maps field names to user supplied values. A missing key renders as "".
type Values map[string]string

// Get returns the value for key, or "" when absent.
func (v Values) Get(key string) string {
	if v == nil {
		return ""
	}
	return v[key]
}

// ValuesFrom converts a decoded JSON object into Values. nil entries become ""
// and other scalars are formatted with fmt.
func ValuesFrom(m map[string]any) Values {
	out := make(Values, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}

// Escape converts a raw value into HTML-safe text. Quotes are left as is.
func Escape(value string) string {
	if value == "" {
		return ""
	}
	return escaper.Replace(value)
}

// Render replaces every placeholder in body with the escaped value of its key.
// Replacement is a single left-to-right pass: substituted text is never scanned
// again, so a value that looks like a placeholder stays literal.
func Render(body string, values Values) string {
	if body == "" {
		return ""
	}
	return placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		if len(sub) < 2 {
			return ""
		}
		return Escape(values.Get(strings.TrimSpace(sub[1])))
	})
}

// StripHTML derives a plain text body from rendered HTML. Tags are removed and
// whitespace collapsed; entities are not decoded.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := tagRe.ReplaceAllString(html, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Placeholders lists the distinct keys referenced by body, in order of first use.
func Placeholders(body string) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, sub := range placeholderRe.FindAllStringSubmatch(body, -1) {
		k := strings.TrimSpace(sub[1])
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
