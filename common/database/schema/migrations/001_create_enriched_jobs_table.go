package migrations

import "github.com/pizofreude/data-career-navigator/common/database/schema"

var CreateEnrichedJobsTable = schema.Migration{
	Version:     1,
	Description: "Create enriched_jobs table",
	Up: []string{`
		CREATE TABLE IF NOT EXISTS enriched_jobs (
			run_id UUID,
			id String,
			title String,
			company String,
			location String,
			link String,
			source String,
			date_posted Nullable(Date),
			work_type String,
			employment_type String,
			description String,
			salary_min Nullable(Float64),
			salary_max Nullable(Float64),
			salary_currency String,
			salary_currency_assumed Bool,
			salary_period String,
			salary_period_assumed Bool,
			annual_min Nullable(Float64),
			annual_max Nullable(Float64),
			annual_usd_min Nullable(Float64),
			annual_usd_max Nullable(Float64),
			salary_miss LowCardinality(String),
			experience_level LowCardinality(String),
			skills Array(String),
			work_arrangement LowCardinality(String),
			employment_kind LowCardinality(String),
			country LowCardinality(String),
			enriched_at DateTime
		) ENGINE = ReplacingMergeTree(enriched_at)
		ORDER BY (id)
		SETTINGS index_granularity = 8192
	`},
	Down: []string{`DROP TABLE IF EXISTS enriched_jobs`},
}
