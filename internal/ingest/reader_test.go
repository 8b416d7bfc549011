package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"

	"github.com/pizofreude/data-career-navigator/internal/errors"
)

const sample = `id,title,company,location,link,source,date_posted,work_type,employment_type,description,extra
1,Data Analyst,Acme,"Austin, TX",https://x/1,linkedin,2025-06-01,Remote,Full-time,"SQL, Python",ignored
2,BI Developer,****,***,https://x/2,jobstreet,06/15/2025,Hybrid,Contract,Tableau,
3,Data Engineer,Beta,Berlin,https://x/3,indeed,yesterday,On-site,Full-time,Spark
`

func TestRead(t *testing.T) {
	res, err := NewReader(zaptest.NewLogger(t)).Read(context.Background(), []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "utf-8", res.Encoding)
	require.Len(t, res.Postings, 3)

	first := res.Postings[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Austin, TX", first.Location)
	assert.Equal(t, "SQL, Python", first.Description)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), first.DatePosted)

	second := res.Postings[1]
	assert.Empty(t, second.Company)
	assert.Empty(t, second.Location)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), second.DatePosted)
	assert.Equal(t, 2, res.Obfuscated)

	third := res.Postings[2]
	assert.True(t, third.DatePosted.IsZero())
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 3, res.Warnings[0].Row)
	assert.Contains(t, res.Warnings[1].Message, "date_posted")
}

func TestReadMissingIDColumn(t *testing.T) {
	_, err := NewReader(zaptest.NewLogger(t)).Read(context.Background(), []byte("title,company\nAnalyst,Acme\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeMalformedRecord))
}

func TestReadEmpty(t *testing.T) {
	_, err := NewReader(zaptest.NewLogger(t)).Read(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
}

func TestReadKeepsEmptyIDs(t *testing.T) {
	res, err := NewReader(zaptest.NewLogger(t)).Read(context.Background(), []byte("id,title\n,Analyst\n7,Engineer\n"))
	require.NoError(t, err)
	require.Len(t, res.Postings, 2)
	assert.Empty(t, res.Postings[0].ID)
}

func TestDecode(t *testing.T) {
	text := "id,title\n1,Café Analyst\n"

	bom := append([]byte{0xEF, 0xBB, 0xBF}, text...)
	out, enc, err := Decode(bom)
	require.NoError(t, err)
	assert.Equal(t, "utf-8-bom", enc)
	assert.Equal(t, text, string(out))

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	out, enc, err = Decode(utf16)
	require.NoError(t, err)
	assert.Equal(t, "utf-16le", enc)
	assert.Equal(t, text, string(out))

	latin1 := []byte("id,title\n1,Caf\xe9 Analyst\n")
	out, enc, err = Decode(latin1)
	require.NoError(t, err)
	assert.Equal(t, "latin-1", enc)
	assert.Equal(t, text, string(out))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bronze.csv")
	header := strings.Join(Columns, ",")
	require.NoError(t, os.WriteFile(path, []byte(header+"\n9,Analyst,Acme,London,,,,,,Excel\n"), 0o644))

	res, err := NewReader(zaptest.NewLogger(t)).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Postings, 1)
	assert.Equal(t, "9", res.Postings[0].ID)
	assert.Equal(t, "Excel", res.Postings[0].Description)

	_, err = NewReader(zaptest.NewLogger(t)).ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, errors.ErrTypeUnavailable))
}
