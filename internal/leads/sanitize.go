package leads

import (
	"regexp"
	"strings"
)

// maxFieldLen caps sanitized field length.
const maxFieldLen = 10000

var (
	scriptTagRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize strips script blocks and HTML tags, trims whitespace, and
// caps the length of a submitted field.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	out := scriptTagRe.ReplaceAllString(input, "")
	out = htmlTagRe.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)
	if len(out) > maxFieldLen {
		out = out[:maxFieldLen]
	}
	return out
}
