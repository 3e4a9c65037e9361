package util

import "unicode/utf8"

// TruncateUTF8 cuts s to at most n bytes without splitting a multibyte character.
func TruncateUTF8(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
