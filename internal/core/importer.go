package core

// importer.go drives one file through an adapter.
//
// The header is matched first; a mismatch aborts before any row is read.
// Every data row is then decoded independently and ends in exactly one of
// three states (clustered, ignored, rejected). Problems never stop the
// import; only an *InternalError does.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RowCluster is a cluster together with the data row it came from.
type RowCluster struct {
	Row     int      `json:"row"`
	Cluster *Cluster `json:"cluster"`
}

// Result is the outcome of one import.
type Result struct {
	ImportID uuid.UUID    `json:"importId"`
	Format   FormatInfo   `json:"format"`
	Schema   string       `json:"schema"`
	Rows     int          `json:"rows"`
	Clusters []RowCluster `json:"clusters"`
	Problems []Problem    `json:"problems"`
	States   []RowState   `json:"states"`
}

// Summary holds per-state row counts.
type Summary struct {
	Rows      int `json:"rows"`
	Clustered int `json:"clustered"`
	Ignored   int `json:"ignored"`
	Rejected  int `json:"rejected"`
}

// Summary counts the rows of r by terminal state.
func (r *Result) Summary() Summary {
	s := Summary{Rows: r.Rows}
	for _, st := range r.States {
		switch st {
		case StateClustered:
			s.Clustered++
		case StateIgnored:
			s.Ignored++
		case StateRejected:
			s.Rejected++
		}
	}
	return s
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithLogger sets the logger used for the import summary and row problems.
func WithLogger(l *slog.Logger) ImporterOption {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// Importer runs rows through one adapter. An Importer holds no per-file
// state and may be reused.
type Importer struct {
	adapter Adapter
	env     Env
	logger  *slog.Logger
}

// NewImporter creates an importer for adapter. A nil adapter selects the
// format from the header with Detect.
func NewImporter(adapter Adapter, env Env, opts ...ImporterOption) *Importer {
	im := &Importer{
		adapter: adapter,
		env:     env,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ParseRows imports an already tokenized file.
func (im *Importer) ParseRows(ctx context.Context, header []string, rows [][]string) (*Result, error) {
	i := 0
	return im.run(ctx, header, func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		i++
		return rows[i-1], nil
	})
}

// Parse tokenizes r as comma-separated text and imports it. A leading UTF-8
// byte order mark is dropped and invalid UTF-8 is replaced.
func (im *Importer) Parse(ctx context.Context, r io.Reader) (*Result, error) {
	reader := NewCSVReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	return im.run(ctx, header, func() ([]string, error) {
		row, err := reader.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		return row, err
	})
}

// NewCSVReader returns a csv.Reader over r that tolerates a byte order mark
// and ragged rows.
func NewCSVReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	return reader
}

func (im *Importer) run(ctx context.Context, header []string, next func() ([]string, error)) (*Result, error) {
	adapter := im.adapter
	if adapter == nil {
		detected, err := Detect(header)
		if err != nil {
			return nil, err
		}
		adapter = detected
	}
	info := adapter.Info()

	schema, err := MatchHeader(info.Key, header, adapter.Schemas())
	if err != nil {
		im.logger.Warn("header rejected", "format", info.Key, "error", err)
		return nil, err
	}

	res := &Result{
		ImportID: uuid.New(),
		Format:   info,
		Schema:   schema.Name,
		Clusters: []RowCluster{},
		Problems: []Problem{},
		States:   []RowState{},
	}
	log := im.logger.With("import_id", res.ImportID.String(), "format", info.Key)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		res.Rows++
		rowNum := res.Rows

		cluster, err := im.decodeRow(adapter, schema, row)
		if err != nil {
			var internal *InternalError
			if errors.As(err, &internal) {
				if internal.Row == 0 {
					internal.Row = rowNum
				}
				log.Error("import aborted", "row", rowNum, "error", err)
				return nil, internal
			}

			p := NewProblem(rowNum, err)
			res.Problems = append(res.Problems, p)
			res.States = append(res.States, p.Kind.State())
			log.Debug("row problem", "row", rowNum, "kind", p.Kind, "code", p.Code, "error", p.Message)
			continue
		}

		res.Clusters = append(res.Clusters, RowCluster{Row: rowNum, Cluster: cluster})
		res.States = append(res.States, StateClustered)
	}

	sum := res.Summary()
	log.Info("import complete",
		"schema", schema.Name,
		"rows", sum.Rows,
		"clustered", sum.Clustered,
		"ignored", sum.Ignored,
		"rejected", sum.Rejected,
	)
	return res, nil
}

// decodeRow binds, classifies, validates and builds one row.
func (im *Importer) decodeRow(adapter Adapter, schema Schema, row []string) (cluster *Cluster, err error) {
	defer func() {
		if r := recover(); r != nil {
			cluster = nil
			err = &InternalError{Err: fmt.Errorf("panic decoding row: %v", r)}
		}
	}()

	rec := NewRecord(schema, row)
	if f, ok := adapter.(RowFilter); ok {
		if err := f.Filter(rec); err != nil {
			return nil, err
		}
	}
	if err := checkRequired(schema, rec); err != nil {
		return nil, err
	}

	dec, err := adapter.Bind(rec, im.env)
	if err != nil {
		return nil, err
	}
	cluster, err = dec.Decode(im.env)
	if err != nil {
		return nil, err
	}
	if cluster == nil || cluster.Main == nil {
		return nil, &InternalError{Err: errors.New("decoder returned no cluster")}
	}
	return cluster, nil
}

func checkRequired(schema Schema, rec Record) error {
	for _, col := range schema.Columns {
		if !col.Required {
			continue
		}
		if _, err := rec.RequiredText(col.Name); err != nil {
			return err
		}
	}
	return nil
}
