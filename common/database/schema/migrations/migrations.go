package migrations

import "github.com/pizofreude/data-career-navigator/common/database/schema"

// All lists every migration the pipeline's tables need.
func All() []schema.Migration {
	return []schema.Migration{
		CreateEnrichedJobsTable,
		CreateGoldTables,
		CreatePipelineRunsTable,
	}
}
