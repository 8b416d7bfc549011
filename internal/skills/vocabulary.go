// Package skills maps job descriptions onto a controlled skill vocabulary.
package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/pizofreude/data-career-navigator/internal/errors"
)

//go:embed default_vocabulary.yaml
var defaultVocabulary []byte

type Skill struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
}

type vocabularyFile struct {
	Version int     `yaml:"version"`
	Skills  []Skill `yaml:"skills"`
}

type alias struct {
	text  string
	skill string
}

// Vocabulary is immutable once loaded.
type Vocabulary struct {
	version int
	skills  map[string]Skill
	// aliases grouped by first rune, longest first.
	index map[rune][]alias
}

// DefaultVocabulary returns the vocabulary compiled into the binary.
func DefaultVocabulary() (*Vocabulary, error) {
	return ParseVocabulary(defaultVocabulary)
}

// LoadVocabulary reads a YAML vocabulary file; an empty path selects the
// default vocabulary.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Unavailable("reading skill vocabulary", err)
	}
	return ParseVocabulary(data)
}

func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.InvalidInput("decoding skill vocabulary", fmt.Errorf("yaml: %w", err))
	}
	return NewVocabulary(file.Version, file.Skills)
}

// NewVocabulary validates skills: names are non-empty and unique, and every
// alias, after normalisation, belongs to exactly one skill.
func NewVocabulary(version int, skills []Skill) (*Vocabulary, error) {
	v := &Vocabulary{
		version: version,
		skills:  make(map[string]Skill, len(skills)),
		index:   make(map[rune][]alias),
	}
	owner := make(map[string]string)

	for _, s := range skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, errors.InvalidInput("skill with empty name", nil)
		}
		if _, dup := v.skills[s.Name]; dup {
			return nil, errors.InvalidInput(fmt.Sprintf("duplicate skill %q", s.Name), nil)
		}

		forms := append([]string{s.Name}, s.Aliases...)
		seen := make(map[string]bool, len(forms))
		var aliases []string
		for _, f := range forms {
			text := normalize(f)
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			if prev, taken := owner[text]; taken {
				return nil, errors.InvalidInput(
					fmt.Sprintf("alias %q belongs to both %q and %q", text, prev, s.Name), nil)
			}
			owner[text] = s.Name
			aliases = append(aliases, text)

			first, _ := utf8.DecodeRuneInString(text)
			v.index[first] = append(v.index[first], alias{text: text, skill: s.Name})
		}
		s.Aliases = aliases
		v.skills[s.Name] = s
	}

	for r := range v.index {
		list := v.index[r]
		sort.Slice(list, func(i, j int) bool {
			if len(list[i].text) != len(list[j].text) {
				return len(list[i].text) > len(list[j].text)
			}
			return list[i].text < list[j].text
		})
	}
	return v, nil
}

func (v *Vocabulary) Version() int {
	return v.version
}

func (v *Vocabulary) Len() int {
	return len(v.skills)
}

func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.skills[name]
	return ok
}

func (v *Vocabulary) Skill(name string) (Skill, bool) {
	s, ok := v.skills[name]
	return s, ok
}

// Category returns the skill's category, or "" for unknown names.
func (v *Vocabulary) Category(name string) string {
	return v.skills[name].Category
}

// Names returns canonical skill names in sorted order.
func (v *Vocabulary) Names() []string {
	names := make([]string, 0, len(v.skills))
	for name := range v.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
