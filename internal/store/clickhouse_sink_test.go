package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// memConn keeps rows per table in memory. Methods the sink does not use are
// left to the embedded interface.
type memConn struct {
	driver.Conn
	tables   map[string][][]any
	failSend map[string]bool
	execs    []string
}

func newMemConn() *memConn {
	return &memConn{tables: map[string][][]any{}, failSend: map[string]bool{}}
}

func tableOf(query string) string {
	return strings.Fields(query)[2]
}

func (c *memConn) Exec(_ context.Context, query string, args ...any) error {
	c.execs = append(c.execs, strings.Join(strings.Fields(query), " "))
	table := tableOf(query)
	switch {
	case strings.Contains(query, "DELETE WHERE run_id"):
		var kept [][]any
		for _, row := range c.tables[table] {
			if row[0] != args[0] {
				kept = append(kept, row)
			}
		}
		c.tables[table] = kept
	case strings.HasPrefix(strings.TrimSpace(query), "INSERT INTO"):
		c.tables[table] = append(c.tables[table], args)
	default:
		return fmt.Errorf("unexpected statement %q", query)
	}
	return nil
}

func (c *memConn) PrepareBatch(_ context.Context, query string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	return &memBatch{conn: c, table: tableOf(query)}, nil
}

type memBatch struct {
	driver.Batch
	conn  *memConn
	table string
	rows  [][]any
}

func (b *memBatch) Append(v ...any) error {
	b.rows = append(b.rows, v)
	return nil
}

func (b *memBatch) Abort() error {
	b.rows = nil
	return nil
}

func (b *memBatch) Send() error {
	if b.conn.failSend[b.table] {
		return fmt.Errorf("connection reset while sending %s", b.table)
	}
	b.conn.tables[b.table] = append(b.conn.tables[b.table], b.rows...)
	return nil
}

func TestClickHouseSinkWrite(t *testing.T) {
	conn := newMemConn()
	run := sampleRun()

	require.NoError(t, NewClickHouseSink(conn, zaptest.NewLogger(t)).Write(context.Background(), run))

	assert.Len(t, conn.tables["enriched_jobs"], 2)
	assert.Len(t, conn.tables["dim_skills"], 2)
	require.Len(t, conn.tables["pipeline_runs"], 1)
	assert.Equal(t, run.ID, conn.tables["pipeline_runs"][0][0])
	assert.Equal(t, uint32(1), conn.tables["pipeline_runs"][0][3], "rejected count")
	assert.Empty(t, conn.tables["dim_companies"], "empty tables send no batch")

	require.Len(t, conn.execs, len(runTables)+1)
	assert.Contains(t, conn.execs[0], "ALTER TABLE pipeline_runs DELETE WHERE run_id = ?")
}

func TestClickHouseSinkRerunReplacesRows(t *testing.T) {
	conn := newMemConn()
	sink := NewClickHouseSink(conn, zaptest.NewLogger(t))

	require.NoError(t, sink.Write(context.Background(), sampleRun()))
	require.NoError(t, sink.Write(context.Background(), sampleRun()))

	assert.Len(t, conn.tables["enriched_jobs"], 2)
	assert.Len(t, conn.tables["dim_skills"], 2)
	assert.Len(t, conn.tables["pipeline_runs"], 1)
}

func TestClickHouseSinkRetryAfterFailedStep(t *testing.T) {
	conn := newMemConn()
	sink := NewClickHouseSink(conn, zaptest.NewLogger(t))

	conn.failSend["dim_skills"] = true
	err := sink.Write(context.Background(), sampleRun())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dim_skills")
	assert.Len(t, conn.tables["enriched_jobs"], 2, "rows of the failed attempt")
	assert.Empty(t, conn.tables["pipeline_runs"], "failed run is not marked complete")

	conn.failSend["dim_skills"] = false
	require.NoError(t, sink.Write(context.Background(), sampleRun()))

	assert.Len(t, conn.tables["enriched_jobs"], 2)
	assert.Len(t, conn.tables["dim_skills"], 2)
	assert.Len(t, conn.tables["pipeline_runs"], 1)
}

func TestClickHouseSinkKeepsOtherRuns(t *testing.T) {
	conn := newMemConn()
	sink := NewClickHouseSink(conn, zaptest.NewLogger(t))

	first := sampleRun()
	second := NewRun(2, first.Result, first.Tables)
	require.NoError(t, sink.Write(context.Background(), first))
	require.NoError(t, sink.Write(context.Background(), second))

	assert.Len(t, conn.tables["dim_skills"], 4)
	assert.Len(t, conn.tables["pipeline_runs"], 2)
}
