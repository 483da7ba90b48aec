package feed

import "strings"

// Normalize keeps only ASCII letters and digits and lowercases the result.
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}

	return b.String()
}
