// Package dataset reads player statistics spreadsheets into an immutable
// player.Dataset and writes them back out in the same formats.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/pkg/logger"
	"github.com/okian/touchboard/pkg/metrics"
)

// Format is a supported file format.
type Format string

// Supported formats.
const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatOf picks a format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithSheet selects a workbook sheet by name. Ignored for csv and parquet.
func WithSheet(sheet string) Option {
	return func(l *Loader) {
		l.sheet = sheet
	}
}

// WithLogger sets the logger. Defaults to logger.Get() on first load.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// Loader reads one file once. Successful results are cached for the life of
// the Loader; failures are not, so a fixed file can be retried.
type Loader struct {
	path   string
	sheet  string
	logger logger.Logger

	mu sync.Mutex
	ds *player.Dataset
}

// NewLoader creates a Loader for path.
func NewLoader(path string, opts ...Option) *Loader {
	l := &Loader{path: path}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the source file path.
func (l *Loader) Path() string { return l.path }

// Load returns the cached Dataset, reading the file on first use.
// Every failure wraps ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*player.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ds != nil {
		return l.ds, nil
	}
	if l.logger == nil {
		l.logger = logger.Get()
	}

	start := time.Now()
	records, err := ReadFile(ctx, l.path, l.sheet)
	if err != nil {
		metrics.RecordDatasetLoadError()
		l.logger.Error(ctx, "dataset load failed", logger.String("path", l.path), logger.Error(err))
		return nil, err
	}

	l.ds = player.NewDataset(records)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(l.ds.Len(), elapsed)
	l.logger.Info(ctx, "dataset loaded",
		logger.String("path", l.path),
		logger.Int("rows", l.ds.Len()),
		logger.Duration("took", elapsed),
	)
	return l.ds, nil
}

// ReadFile parses path into records without caching.
func ReadFile(ctx context.Context, path, sheet string) ([]player.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatXLSX:
		return readXLSX(f, sheet)
	case FormatCSV:
		return readCSV(f)
	default:
		st, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		return readParquet(f, st.Size())
	}
}

// WriteFile writes ds to path in the format implied by its extension.
func WriteFile(path string, ds *player.Dataset) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return Encode(f, format, ds.Records())
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, format Format, records []player.Record) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatParquet:
		return writeParquet(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
