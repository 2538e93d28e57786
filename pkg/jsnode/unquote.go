package jsnode

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unquote decodes the escape sequences of a JavaScript string literal body
// (the text between the quotes).
func Unquote(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			i++
			continue
		}

		i++ // backslash
		switch body[i] {
		case 'b':
			sb.WriteByte('\b')
			i++
		case 'f':
			sb.WriteByte('\f')
			i++
		case 'n':
			sb.WriteByte('\n')
			i++
		case 'r':
			sb.WriteByte('\r')
			i++
		case 't':
			sb.WriteByte('\t')
			i++
		case 'v':
			sb.WriteByte('\v')
			i++
		case '0':
			if i+1 < len(body) && body[i+1] >= '0' && body[i+1] <= '9' {
				sb.WriteByte('0')
			} else {
				sb.WriteByte(0)
			}
			i++
		case '\n':
			i++
		case '\r':
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(body, i+1, 2); ok {
				sb.WriteRune(r)
				i += 3
			} else {
				sb.WriteByte('x')
				i++
			}
		case 'u':
			r, n := parseUnicodeEscape(body, i)
			if n == 0 {
				sb.WriteByte('u')
				i++
				continue
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i:], "\\u") {
				if lo, m := parseUnicodeEscape(body, i+1); m > 0 {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						r = pair
						i += 1 + m
					}
				}
			}
			sb.WriteRune(r)
		default:
			r, size := utf8.DecodeRuneInString(body[i:])
			if r != '\u2028' && r != '\u2029' {
				sb.WriteRune(r)
			}
			i += size
		}
	}
	return sb.String()
}

// parseUnicodeEscape decodes \uXXXX or \u{X...} starting at the 'u' at
// body[i]. It returns the rune and the number of bytes consumed, 0 if invalid.
func parseUnicodeEscape(body string, i int) (rune, int) {
	if i+1 < len(body) && body[i+1] == '{' {
		end := strings.IndexByte(body[i+2:], '}')
		if end <= 0 {
			return 0, 0
		}
		r, ok := parseHex(body, i+2, end)
		if !ok || r > utf8.MaxRune {
			return 0, 0
		}
		return r, end + 3
	}
	r, ok := parseHex(body, i+1, 4)
	if !ok {
		return 0, 0
	}
	return r, 5
}

func parseHex(body string, start, n int) (rune, bool) {
	if start+n > len(body) {
		return 0, false
	}
	v, err := strconv.ParseUint(body[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
