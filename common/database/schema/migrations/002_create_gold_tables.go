package migrations

import "github.com/pizofreude/data-career-navigator/common/database/schema"

// Gold tables hold one copy per run_id. The ClickHouse sink deletes a run's
// rows before writing it again, and its pipeline_runs row marks the run
// complete.
var CreateGoldTables = schema.Migration{
	Version:     2,
	Description: "Create gold dimension and statistics tables",
	Up: []string{
		`CREATE TABLE IF NOT EXISTS dim_skills (
			run_id UUID,
			skill_id UUID,
			name String,
			category LowCardinality(String),
			frequency UInt32
		) ENGINE = MergeTree()
		ORDER BY (run_id, name)`,
		`CREATE TABLE IF NOT EXISTS job_skills (
			run_id UUID,
			job_id String,
			skill_id UUID,
			skill String,
			category LowCardinality(String)
		) ENGINE = MergeTree()
		ORDER BY (run_id, job_id, skill)`,
		`CREATE TABLE IF NOT EXISTS dim_companies (
			run_id UUID,
			company_id UUID,
			name String,
			job_count UInt32,
			median_annual_usd Nullable(Float64),
			country LowCardinality(String)
		) ENGINE = MergeTree()
		ORDER BY (run_id, name)`,
		`CREATE TABLE IF NOT EXISTS country_skill_counts (
			run_id UUID,
			country LowCardinality(String),
			skill String,
			count UInt32
		) ENGINE = MergeTree()
		ORDER BY (run_id, country, skill)`,
		`CREATE TABLE IF NOT EXISTS experience_skill_counts (
			run_id UUID,
			experience_level LowCardinality(String),
			skill String,
			count UInt32
		) ENGINE = MergeTree()
		ORDER BY (run_id, experience_level, skill)`,
		`CREATE TABLE IF NOT EXISTS salary_skill_stats (
			run_id UUID,
			skill String,
			count UInt32,
			no_salary_count UInt32,
			mean Nullable(Float64),
			p25 Nullable(Float64),
			median Nullable(Float64),
			p75 Nullable(Float64)
		) ENGINE = MergeTree()
		ORDER BY (run_id, skill)`,
	},
	Down: []string{
		`DROP TABLE IF EXISTS salary_skill_stats`,
		`DROP TABLE IF EXISTS experience_skill_counts`,
		`DROP TABLE IF EXISTS country_skill_counts`,
		`DROP TABLE IF EXISTS dim_companies`,
		`DROP TABLE IF EXISTS job_skills`,
		`DROP TABLE IF EXISTS dim_skills`,
	},
}
