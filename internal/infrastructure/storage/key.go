package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ObjectKey builds "<prefix>/<unix-millis>_<name>" where name is filename
// folded to a URL-safe form: accents are stripped, whitespace becomes '-'
// and anything else outside [A-Za-z0-9._-] is dropped.
func ObjectKey(prefix, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", strings.Trim(prefix, "/"), at.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename returns the URL-safe form of the base name of filename
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, base)
	if err != nil {
		folded = base
	}

	var b strings.Builder
	lastDash := false
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '_':
			b.WriteRune(r)
			lastDash = false
		case r == '-' || unicode.IsSpace(r):
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	name := strings.Trim(b.String(), "-.")
	if name == "" {
		return "file"
	}
	return name
}
