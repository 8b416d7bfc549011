package skills

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pizofreude/data-career-navigator/internal/models"
)

// Extractor matches whole tokens only. Letters, digits, '_', '+', '#' and
// '&' are token characters on both sides of a match; '.' also counts on the
// left, so "js" never matches inside "node.js" while "python." still does.
type Extractor struct {
	vocab *Vocabulary
}

func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract returns the sorted set of canonical skills named in text. At each
// position the longest alias wins and its characters are consumed, so
// overlapping forms ("c/c++", "c++", "c") count once.
func (e *Extractor) Extract(text string) models.SkillSet {
	found := make(map[string]struct{})
	s := normalize(text)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:i])
			if isTokenRune(prev) || prev == '.' {
				i += size
				continue
			}
		}

		matched := 0
		for _, a := range e.vocab.index[r] {
			if strings.HasPrefix(s[i:], a.text) && !tokenRuneAt(s, i+len(a.text)) {
				found[a.skill] = struct{}{}
				matched = len(a.text)
				break
			}
		}
		if matched > 0 {
			i += matched
			continue
		}
		i += size
	}

	set := make(models.SkillSet, 0, len(found))
	for name := range found {
		set = append(set, name)
	}
	sort.Strings(set)
	return set
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#' || r == '&'
}

func tokenRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isTokenRune(r)
}

// normalize applies NFKC, lower-cases and collapses whitespace runs.
func normalize(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ")
}
