package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pizofreude/data-career-navigator/internal/enrichment"
	"github.com/pizofreude/data-career-navigator/internal/errors"

	"go.uber.org/zap"
)

const ManifestFile = "manifest.json"

// Manifest is written last; its presence marks the run directory complete.
type Manifest struct {
	RunID             string           `json:"run_id"`
	VocabularyVersion int              `json:"vocabulary_version"`
	Stats             enrichment.Stats `json:"stats"`
	Files             map[string]int   `json:"files"`
}

// JSONSink writes each run to <root>/<run id>/ as one JSON array per table.
type JSONSink struct {
	root   string
	logger *zap.Logger
}

func NewJSONSink(root string, logger *zap.Logger) *JSONSink {
	return &JSONSink{root: root, logger: logger}
}

// Dir is the directory a run is written to.
func (s *JSONSink) Dir(run *Run) string {
	return filepath.Join(s.root, run.ID.String())
}

func (s *JSONSink) Write(ctx context.Context, run *Run) error {
	dir := s.Dir(run)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Unavailable("creating run directory", err)
	}
	// A rerun replaces an earlier manifest only after every table is rewritten.
	if err := os.Remove(filepath.Join(dir, ManifestFile)); err != nil && !os.IsNotExist(err) {
		return errors.Unavailable("clearing previous manifest", err)
	}

	tables := []struct {
		name string
		rows any
		n    int
	}{
		{"enriched_jobs.json", run.Result.Postings, len(run.Result.Postings)},
		{"rejected.json", run.Result.Rejected, len(run.Result.Rejected)},
		{"skills.json", run.Tables.Skills, len(run.Tables.Skills)},
		{"job_skills.json", run.Tables.JobSkills, len(run.Tables.JobSkills)},
		{"companies.json", run.Tables.Companies, len(run.Tables.Companies)},
		{"country_skill_counts.json", run.Tables.CountrySkillCounts, len(run.Tables.CountrySkillCounts)},
		{"experience_skill_counts.json", run.Tables.ExperienceSkillCounts, len(run.Tables.ExperienceSkillCounts)},
		{"salary_skill_stats.json", run.Tables.SalarySkillStats, len(run.Tables.SalarySkillStats)},
	}

	manifest := Manifest{
		RunID:             run.ID.String(),
		VocabularyVersion: run.VocabularyVersion,
		Stats:             run.Result.Stats,
		Files:             make(map[string]int, len(tables)),
	}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("json sink cancelled: %w", err)
		}
		if err := writeJSON(filepath.Join(dir, t.name), t.rows); err != nil {
			return err
		}
		manifest.Files[t.name] = t.n
	}

	if err := writeJSON(filepath.Join(dir, ManifestFile), manifest); err != nil {
		return err
	}

	s.logger.Info("wrote run to json sink",
		zap.String("dir", dir),
		zap.String("run_id", manifest.RunID),
		zap.Int("enriched", len(run.Result.Postings)))
	return nil
}

// writeJSON replaces path atomically through a temp file in the same directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Internal(fmt.Sprintf("encoding %s", filepath.Base(path)), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Unavailable("creating temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Unavailable(fmt.Sprintf("writing %s", filepath.Base(path)), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Unavailable(fmt.Sprintf("closing %s", filepath.Base(path)), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Unavailable(fmt.Sprintf("renaming %s", filepath.Base(path)), err)
	}
	return nil
}
