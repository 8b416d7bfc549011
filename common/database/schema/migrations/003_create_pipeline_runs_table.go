package migrations

import "github.com/pizofreude/data-career-navigator/common/database/schema"

var CreatePipelineRunsTable = schema.Migration{
	Version:     3,
	Description: "Create pipeline_runs table",
	Up: []string{`
		CREATE TABLE IF NOT EXISTS pipeline_runs (
			run_id UUID,
			input_count UInt32,
			enriched_count UInt32,
			rejected_count UInt32,
			job_skill_count UInt32,
			vocabulary_version UInt32,
			completed_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (completed_at, run_id)
	`},
	Down: []string{`DROP TABLE IF EXISTS pipeline_runs`},
}
