package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"
)

func defaultExtractor(t *testing.T) *Extractor {
	t.Helper()
	vocab, err := DefaultVocabulary()
	require.NoError(t, err)
	return NewExtractor(vocab)
}

func TestExtract(t *testing.T) {
	e := defaultExtractor(t)

	tests := []struct {
		name string
		text string
		want models.SkillSet
	}{
		{"single letter language", "Experience with R and Python required", models.SkillSet{"Python", "R"}},
		{"no match inside words", "Report to the Director", models.SkillSet{}},
		{"c is not c++", "We write C++ and C# daily", models.SkillSet{"C#", "C++"}},
		{"plain c", "Embedded C, some Rust.", models.SkillSet{"C", "Rust"}},
		{"node.js is not js", "Backend in Node.js", models.SkillSet{"Node.js"}},
		{"js alias", "Strong JS skills", models.SkillSet{"JavaScript"}},
		{"synonyms count once", "Power BI (PowerBI) dashboards", models.SkillSet{"Power BI"}},
		{"longest alias wins", "MySQL and PostgreSQL, not just SQL", models.SkillSet{"MySQL", "PostgreSQL", "SQL"}},
		{"multi word alias", "Deploy on Google  Cloud and AWS", models.SkillSet{"AWS", "GCP"}},
		{"trailing punctuation", "Must know spark.", models.SkillSet{"Spark"}},
		{"r and d is not r", "Join our R&D team", models.SkillSet{}},
		{"fullwidth text", "Ｐｙｔｈｏｎ and ＳＱＬ", models.SkillSet{"Python", "SQL"}},
		{"empty", "", models.SkillSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.want, got)
			for _, s := range got {
				assert.True(t, e.Vocabulary().Contains(s), "skill %q not in vocabulary", s)
			}
		})
	}
}

func TestExtractWithCustomVocabulary(t *testing.T) {
	vocab, err := ParseVocabulary([]byte(`
version: 2
skills:
  - name: dbt
    category: analyst_tools
    aliases: [data build tool]
  - name: Python
    category: programming_languages
`))
	require.NoError(t, err)
	assert.Equal(t, 2, vocab.Version())

	got := NewExtractor(vocab).Extract("Python, dbt (data build tool) and R")
	assert.Equal(t, models.SkillSet{"Python", "dbt"}, got)
}

func TestVocabularyRejectsSharedAlias(t *testing.T) {
	_, err := NewVocabulary(1, []Skill{
		{Name: "JavaScript", Aliases: []string{"js"}},
		{Name: "JSON", Aliases: []string{"JS"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
}

func TestVocabularyRejectsEmptyName(t *testing.T) {
	_, err := NewVocabulary(1, []Skill{{Name: "  "}})
	require.Error(t, err)
}

func TestDefaultVocabulary(t *testing.T) {
	vocab, err := DefaultVocabulary()
	require.NoError(t, err)

	assert.Greater(t, vocab.Len(), 100)
	assert.Equal(t, "programming_languages", vocab.Category("Python"))
	assert.Equal(t, "cloud_platforms", vocab.Category("AWS"))
	assert.Empty(t, vocab.Category("COBOL++"))

	names := vocab.Names()
	assert.IsNonDecreasing(t, names)
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	_, err := LoadVocabulary("/nonexistent/vocab.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeUnavailable))
}

func TestExtractIsDeterministic(t *testing.T) {
	e := defaultExtractor(t)
	text := "SQL, Python, Tableau, Excel, AWS and Snowflake"

	first := e.Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}
