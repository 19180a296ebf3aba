package uid

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeValue replaces the five markup-significant characters with entity references.
func escapeValue(s string) string {
	return attrEscaper.Replace(s)
}

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

// decodeValue expands entity and character references in a raw attribute
// value and normalizes literal tabs and line breaks to spaces, the way an XML
// reader reports attribute values.
func decodeValue(raw string) (string, error) {
	if !strings.ContainsAny(raw, "&\t\n\r") {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch ch {
		case '\t', '\n':
			b.WriteByte(' ')
		case '\r':
			b.WriteByte(' ')
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '&':
			end := strings.IndexByte(raw[i:], ';')
			if end < 0 {
				return "", fmt.Errorf("unterminated entity reference")
			}
			ref := raw[i+1 : i+end]
			text, err := expandReference(ref)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
			i += end
		default:
			b.WriteByte(ch)
		}
	}

	return b.String(), nil
}

func expandReference(ref string) (string, error) {
	if text, ok := predefinedEntities[ref]; ok {
		return text, nil
	}
	if !strings.HasPrefix(ref, "#") {
		return "", fmt.Errorf("unknown entity &%s;", ref)
	}

	digits, base := ref[1:], 10
	if strings.HasPrefix(digits, "x") {
		digits, base = digits[1:], 16
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 || !utf8.ValidRune(rune(n)) {
		return "", fmt.Errorf("invalid character reference &%s;", ref)
	}
	return string(rune(n)), nil
}
