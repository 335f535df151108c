package api

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client supplied name to a flat ASCII file name
// safe to store: accents are folded, separators and whitespace become
// underscores, anything else outside [A-Za-z0-9_.-] is dropped and
// leading or trailing dots and underscores are trimmed. The result may be
// empty.
func SecureFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, norm.NFKD.String(name))

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// allowedFile reports whether name carries one of the allowed extensions.
func allowedFile(name string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return false
	}
	return lo.Contains(allowed, ext)
}
