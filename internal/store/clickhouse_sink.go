package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"

	"github.com/pizofreude/data-career-navigator/common/telemetry"
	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// runTables holds every table keyed by run_id. pipeline_runs comes first so
// a run being rewritten stops counting as complete before its rows go.
var runTables = []string{
	"pipeline_runs",
	"enriched_jobs",
	"dim_skills",
	"job_skills",
	"dim_companies",
	"country_skill_counts",
	"experience_skill_counts",
	"salary_skill_stats",
}

// ClickHouseSink batch-inserts runs into the tables created by the
// migrations package. Writing a run first deletes any rows an earlier
// attempt left under the same run ID; the pipeline_runs row is inserted
// last and marks the run complete.
type ClickHouseSink struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewClickHouseSink(conn clickhouse.Conn, logger *zap.Logger) *ClickHouseSink {
	return &ClickHouseSink{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("data-career-navigator/store"),
		now:    time.Now,
	}
}

func (s *ClickHouseSink) Write(ctx context.Context, run *Run) error {
	ctx, span := s.tracer.Start(ctx, "store.ClickHouseSink.Write")
	defer span.End()
	span.SetAttributes(telemetry.String("run.id", run.ID.String()))

	steps := []struct {
		name string
		fn   func(context.Context, *Run) error
	}{
		{"clear", s.clearRun},
		{"enriched_jobs", func(ctx context.Context, run *Run) error {
			return s.WriteEnriched(ctx, run.ID, run.Result.Postings)
		}},
		{"dim_skills", s.insertSkills},
		{"job_skills", s.insertJobSkills},
		{"dim_companies", s.insertCompanies},
		{"country_skill_counts", s.insertCountrySkillCounts},
		{"experience_skill_counts", s.insertExperienceSkillCounts},
		{"salary_skill_stats", s.insertSalarySkillStats},
		{"pipeline_runs", s.insertRun},
	}
	for _, step := range steps {
		if err := step.fn(ctx, run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, step.name)
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	s.logger.Info("wrote run to clickhouse",
		zap.String("run_id", run.ID.String()),
		zap.Int("enriched", len(run.Result.Postings)),
		zap.Int("job_skills", len(run.Tables.JobSkills)))
	return nil
}

// clearRun removes the run's rows synchronously, so the inserts that follow
// never mix with a previous attempt.
func (s *ClickHouseSink) clearRun(ctx context.Context, run *Run) error {
	for _, table := range runTables {
		query := fmt.Sprintf("ALTER TABLE %s DELETE WHERE run_id = ? SETTINGS mutations_sync = 2", table)
		if err := s.conn.Exec(ctx, query, run.ID); err != nil {
			return errors.Unavailable(fmt.Sprintf("clearing %s", table), err)
		}
	}
	return nil
}

func (s *ClickHouseSink) WriteEnriched(ctx context.Context, runID uuid.UUID, postings []models.EnrichedJobPosting) error {
	if len(postings) == 0 {
		return nil
	}
	enrichedAt := s.now().UTC()
	return s.batch(ctx, "INSERT INTO enriched_jobs", len(postings), func(b driver.Batch, i int) error {
		p := postings[i]
		var posted *time.Time
		if !p.DatePosted.IsZero() {
			posted = &p.DatePosted
		}
		return b.Append(
			runID,
			p.ID,
			p.Title,
			p.Company,
			p.Location,
			p.Link,
			p.Source,
			posted,
			p.WorkType,
			p.EmploymentType,
			p.Description,
			p.Salary.Min,
			p.Salary.Max,
			p.Salary.Currency,
			p.Salary.CurrencyAssumed,
			string(p.Salary.Period),
			p.Salary.PeriodAssumed,
			p.Salary.AnnualMin,
			p.Salary.AnnualMax,
			p.Salary.AnnualUSDMin,
			p.Salary.AnnualUSDMax,
			string(p.Salary.Miss),
			p.Experience.String(),
			[]string(p.Skills),
			string(p.JobType.WorkArrangement),
			string(p.JobType.EmploymentKind),
			p.Country,
			enrichedAt,
		)
	})
}

func (s *ClickHouseSink) insertSkills(ctx context.Context, run *Run) error {
	rows := run.Tables.Skills
	return s.batch(ctx, "INSERT INTO dim_skills", len(rows), func(b driver.Batch, i int) error {
		return b.Append(run.ID, rows[i].ID, rows[i].Name, rows[i].Category, uint32(rows[i].Frequency))
	})
}

func (s *ClickHouseSink) insertJobSkills(ctx context.Context, run *Run) error {
	rows := run.Tables.JobSkills
	return s.batch(ctx, "INSERT INTO job_skills", len(rows), func(b driver.Batch, i int) error {
		return b.Append(run.ID, rows[i].JobID, rows[i].SkillID, rows[i].Skill, rows[i].Category)
	})
}

func (s *ClickHouseSink) insertCompanies(ctx context.Context, run *Run) error {
	rows := run.Tables.Companies
	return s.batch(ctx, "INSERT INTO dim_companies", len(rows), func(b driver.Batch, i int) error {
		return b.Append(run.ID, rows[i].ID, rows[i].Name, uint32(rows[i].JobCount), rows[i].MedianAnnualUSD, rows[i].Country)
	})
}

func (s *ClickHouseSink) insertCountrySkillCounts(ctx context.Context, run *Run) error {
	rows := run.Tables.CountrySkillCounts
	return s.batch(ctx, "INSERT INTO country_skill_counts", len(rows), func(b driver.Batch, i int) error {
		return b.Append(run.ID, rows[i].Country, rows[i].Skill, uint32(rows[i].Count))
	})
}

func (s *ClickHouseSink) insertExperienceSkillCounts(ctx context.Context, run *Run) error {
	rows := run.Tables.ExperienceSkillCounts
	return s.batch(ctx, "INSERT INTO experience_skill_counts", len(rows), func(b driver.Batch, i int) error {
		return b.Append(run.ID, rows[i].Experience.String(), rows[i].Skill, uint32(rows[i].Count))
	})
}

func (s *ClickHouseSink) insertSalarySkillStats(ctx context.Context, run *Run) error {
	rows := run.Tables.SalarySkillStats
	return s.batch(ctx, "INSERT INTO salary_skill_stats", len(rows), func(b driver.Batch, i int) error {
		r := rows[i]
		return b.Append(run.ID, r.Skill, uint32(r.Count), uint32(r.NoSalaryCount), r.Mean, r.P25, r.Median, r.P75)
	})
}

func (s *ClickHouseSink) insertRun(ctx context.Context, run *Run) error {
	return s.conn.Exec(ctx, `
		INSERT INTO pipeline_runs (
			run_id, input_count, enriched_count, rejected_count,
			job_skill_count, vocabulary_version, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		uint32(run.Result.Stats.Input),
		uint32(run.Result.Stats.Enriched),
		uint32(run.Result.Stats.Rejected()),
		uint32(len(run.Tables.JobSkills)),
		uint32(run.VocabularyVersion),
		s.now().UTC(),
	)
}

func (s *ClickHouseSink) batch(ctx context.Context, query string, n int, appendRow func(driver.Batch, int) error) error {
	if n == 0 {
		return nil
	}
	b, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return errors.Unavailable("preparing batch", err)
	}
	for i := 0; i < n; i++ {
		if err := appendRow(b, i); err != nil {
			_ = b.Abort()
			return errors.Internal(fmt.Sprintf("appending row %d", i), err)
		}
	}
	if err := b.Send(); err != nil {
		return errors.Unavailable("sending batch", err)
	}
	return nil
}
