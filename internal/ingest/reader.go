// Package ingest reads bronze job-posting CSV files.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/pizofreude/data-career-navigator/internal/errors"
	"github.com/pizofreude/data-career-navigator/internal/models"

	"go.uber.org/zap"
)

// Columns is the bronze header. Extra columns are ignored; id is required.
var Columns = []string{
	"id", "title", "company", "location", "link", "source",
	"date_posted", "work_type", "employment_type", "description",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02 Jan 2006",
}

// Warning is a non-fatal issue tied to a data row (1-indexed, header is 0).
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type Result struct {
	Postings []models.RawJobPosting
	Warnings []Warning
	Encoding string
	// Obfuscated counts fields blanked because they held no letters or digits.
	Obfuscated int
}

type Reader struct {
	logger *zap.Logger
}

func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logger}
}

func (r *Reader) ReadFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Unavailable("reading bronze file", err)
	}
	res, err := r.Read(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.logger.Info("read bronze postings",
		zap.String("path", path),
		zap.String("encoding", res.Encoding),
		zap.Int("postings", len(res.Postings)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("obfuscated_fields", res.Obfuscated))
	return res, nil
}

// Read parses CSV bytes into postings in file order. Short rows are padded,
// long rows truncated, and unreadable rows skipped with a warning.
func (r *Reader) Read(ctx context.Context, data []byte) (*Result, error) {
	decoded, encoding, err := Decode(data)
	if err != nil {
		return nil, errors.InvalidInput("decoding bronze file", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.InvalidInput("empty file: no header row found", nil)
		}
		return nil, errors.InvalidInput("reading header row", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, errors.MalformedRecord("header has no id column", nil)
	}

	res := &Result{Encoding: encoding}
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ingest cancelled: %w", err)
		}
		fields, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{Row: row, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}
		if len(fields) != len(header) {
			res.Warnings = append(res.Warnings, Warning{
				Row:     row,
				Message: fmt.Sprintf("row has %d columns, expected %d", len(fields), len(header)),
			})
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(fields) {
				return ""
			}
			v := strings.TrimSpace(fields[i])
			if v != "" && col != "link" && obfuscated(v) {
				res.Obfuscated++
				return ""
			}
			return v
		}

		posting := models.RawJobPosting{
			ID:             get("id"),
			Title:          get("title"),
			Company:        get("company"),
			Location:       get("location"),
			Link:           get("link"),
			Source:         get("source"),
			WorkType:       get("work_type"),
			EmploymentType: get("employment_type"),
			Description:    get("description"),
		}
		if raw := get("date_posted"); raw != "" {
			t, ok := parseDate(raw)
			if !ok {
				res.Warnings = append(res.Warnings, Warning{Row: row, Message: fmt.Sprintf("unparseable date_posted %q", raw)})
			}
			posting.DatePosted = t
		}
		res.Postings = append(res.Postings, posting)
	}
	return res, nil
}

// obfuscated reports values made only of masking characters, e.g. "****".
func obfuscated(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
