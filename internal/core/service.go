package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// DefaultImportTimeout bounds a single import when no timeout is configured.
const DefaultImportTimeout = 2 * time.Minute

// DefaultResultTTL is how long finished results stay retrievable by ID.
const DefaultResultTTL = 15 * time.Minute

// ServiceConfig configures a Service.
type ServiceConfig struct {
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
	ResultTTL     time.Duration
}

// Service is the entry point used by frontends: it resolves formats, limits
// concurrent imports and keeps recent results.
type Service struct {
	env     Env
	limiter *ImportLimiter
	results *cache.Cache
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a Service. A nil logger uses slog.Default().
func NewService(env Env, cfg ServiceConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultImportTimeout
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = DefaultResultTTL
	}
	return &Service{
		env:     env,
		limiter: NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		results: cache.New(cfg.ResultTTL, 2*cfg.ResultTTL),
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// FormatDescription lists a format with its accepted header layouts.
type FormatDescription struct {
	FormatInfo
	Schemas []SchemaDescription `json:"schemas"`
}

// SchemaDescription is one accepted header layout.
type SchemaDescription struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// ListFormats describes every registered format.
func (s *Service) ListFormats() []FormatDescription {
	adapters := All()
	out := make([]FormatDescription, len(adapters))
	for i, a := range adapters {
		out[i] = describe(a)
	}
	return out
}

// Format describes one format by key.
func (s *Service) Format(key string) (FormatDescription, error) {
	a, err := Lookup(key)
	if err != nil {
		return FormatDescription{}, err
	}
	return describe(a), nil
}

func describe(a Adapter) FormatDescription {
	schemas := a.Schemas()
	desc := FormatDescription{
		FormatInfo: a.Info(),
		Schemas:    make([]SchemaDescription, len(schemas)),
	}
	for j, sc := range schemas {
		desc.Schemas[j] = SchemaDescription{Name: sc.Name, Columns: sc.Header()}
	}
	return desc
}

// Template returns a CSV file holding the header of the format's first layout.
func (s *Service) Template(key string) ([]byte, error) {
	a, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(a.Schemas()[0].Header()); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// Import parses r with the format named by key. An empty key detects the
// format from the header.
func (s *Service) Import(ctx context.Context, key string, r io.Reader) (*Result, error) {
	var adapter Adapter
	if key != "" {
		a, err := Lookup(key)
		if err != nil {
			return nil, err
		}
		adapter = a
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	res, err := NewImporter(adapter, s.env, WithLogger(s.logger)).Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	s.results.Set(res.ImportID.String(), res, cache.DefaultExpiration)
	s.logger.Debug("import stored", "import_id", res.ImportID, "duration", time.Since(started))
	return res, nil
}

// NamedReader is one file of a batch.
type NamedReader struct {
	Name   string
	Reader io.Reader
}

// FileResult is the outcome of one file of a batch. Exactly one of Result
// and Error is set.
type FileResult struct {
	Name   string       `json:"name"`
	Result *Result      `json:"result,omitempty"`
	Error  *UserMessage `json:"error,omitempty"`

	failure *UserError
}

// Err returns the technical error behind Error.
func (f *FileResult) Err() error {
	if f.failure == nil {
		return nil
	}
	return f.failure.Technical
}

// ImportBatch imports several files concurrently. A failing file does not
// stop the others; only cancellation of ctx fails the batch.
func (s *Service) ImportBatch(ctx context.Context, key string, files []NamedReader) ([]*FileResult, error) {
	out := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limiter.Capacity())

	for i, f := range files {
		g.Go(func() error {
			res, err := s.Import(gctx, key, f.Reader)
			fr := &FileResult{Name: f.Name, Result: res, failure: NewUserError(err)}
			if fr.failure != nil {
				fr.Error = &fr.failure.User
				s.logger.Warn("batch file failed", "file", f.Name, "code", fr.Error.Code, "error", err)
			}
			out[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Result returns a stored result by import ID.
func (s *Service) Result(id string) (*Result, error) {
	if v, ok := s.results.Get(id); ok {
		return v.(*Result), nil
	}
	return nil, fmt.Errorf("import not found: %s", id)
}

// Status reports limiter occupancy.
func (s *Service) Status() LimiterStatus {
	return s.limiter.Status()
}

// Shutdown waits for in-flight imports to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.limiter.Drain(ctx)
}
