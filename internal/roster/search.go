package roster

import (
	"strings"

	"github.com/alexsergivan/transliterator"
)

type matcher struct {
	translit *transliterator.Transliterator
}

func newMatcher() *matcher {
	return &matcher{translit: transliterator.NewTransliterator(nil)}
}

func (m *matcher) normalize(text string) string {
	return strings.ToLower(m.translit.Transliterate(text, "en"))
}

// contains reports whether any of the fields contains query, ignoring case and
// diacritics. An empty query matches everything.
func (m *matcher) contains(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = m.normalize(query)
	for _, field := range fields {
		if strings.Contains(m.normalize(field), query) {
			return true
		}
	}
	return false
}
