package transfer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
)

// ImportOptions tunes Import.
type ImportOptions struct {
	// Strict validates every record and rejects the whole batch on any
	// violation. When false anything that decodes is accepted.
	Strict bool

	// Timeout bounds picking and reading the file. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration

	// MaxBytes caps the file size. Zero means no cap.
	MaxBytes int64
}

// DefaultImportOptions validates strictly and waits at most five minutes.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Strict:   true,
		Timeout:  5 * time.Minute,
		MaxBytes: 10 << 20,
	}
}

// Importer turns a picked file into a record batch. It never touches the
// store: callers replace the collection only after Import succeeds.
type Importer struct {
	opts   ImportOptions
	logger logger.Logger
}

func NewImporter(opts ImportOptions, log logger.Logger) *Importer {
	return &Importer{opts: opts, logger: log}
}

// Import picks a file, reads it fully and decodes it.
func (im *Importer) Import(ctx context.Context, picker Picker) ([]domain.Acronym, error) {
	records, name, err := im.importFrom(ctx, picker)
	if err != nil {
		im.logger.Warn("import failed",
			logger.String("file", name),
			logger.Error(err))
		return nil, err
	}
	im.logger.Info("import parsed",
		logger.String("file", name),
		logger.Int("count", len(records)),
		logger.Bool("strict", im.opts.Strict))
	return records, nil
}

func (im *Importer) importFrom(ctx context.Context, picker Picker) ([]domain.Acronym, string, error) {
	if im.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.opts.Timeout)
		defer cancel()
	}

	rc, name, err := picker.Pick(ctx)
	if err != nil {
		return nil, name, err
	}
	defer rc.Close()

	data, err := readAll(ctx, rc, im.opts.MaxBytes)
	if err != nil {
		return nil, name, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, name, fmt.Errorf("%w: %s is empty", ErrParse, displayName(name))
	}

	records, err := decodeBytes(data)
	if err != nil {
		return nil, name, err
	}

	if im.opts.Strict {
		if violations := domain.Validate(records); len(violations) > 0 {
			return nil, name, invalidRecordsError(violations)
		}
	}
	return records, name, nil
}

// readAll reads r until EOF, giving up when ctx is done. r is closed by
// the caller, which also unblocks the pending read.
func readAll(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("failed to read file: %w", res.err)
		}
		if limit > 0 && int64(len(res.data)) > limit {
			return nil, fmt.Errorf("file exceeds %d bytes", limit)
		}
		return res.data, nil
	}
}

func invalidRecordsError(violations []domain.Violation) error {
	const shown = 5
	parts := make([]string, 0, shown)
	for i, v := range violations {
		if i == shown {
			parts = append(parts, fmt.Sprintf("and %d more", len(violations)-shown))
			break
		}
		parts = append(parts, v.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecords, strings.Join(parts, "; "))
}

func displayName(name string) string {
	if name == "" {
		return "file"
	}
	return name
}
