package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oleg578/linecsv"
	"github.com/oleg578/linecsv/internal/config"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a decoding progress update.
type ProgressEvent struct {
	Path    string
	Message string
	Level   ProgressLevel
}

// RecordFunc receives every data record of every file. It may be called
// concurrently for different paths.
type RecordFunc func(path string, seq int, rec linecsv.Record) error

// HeaderFunc receives the header of a file before any of its data records.
// It may be called concurrently for different paths.
type HeaderFunc func(path string, header linecsv.Record) error

// Result is the outcome of decoding one file.
type Result struct {
	Path    string
	Summary linecsv.Summary
	Elapsed time.Duration
	Err     error
}

// Manager coordinates concurrent decoding of files.
type Manager struct {
	settings   *config.Settings
	onProgress func(ProgressEvent)
	onRecord   RecordFunc
	onHeader   HeaderFunc

	decodedFiles   int32
	failedFiles    int32
	decodedRecords int64
}

// NewManager creates a new Manager. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{settings: settings, onProgress: onProgress}
}

// OnRecord registers fn to receive decoded data records.
func (m *Manager) OnRecord(fn RecordFunc) {
	m.onRecord = fn
}

// OnHeader registers fn to receive each file's header record.
func (m *Manager) OnHeader(fn HeaderFunc) {
	m.onHeader = fn
}

// Run decodes every path and returns one Result per path, in input order.
func (m *Manager) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentFiles, 1))

	for i, path := range paths {
		g.Go(func() error {
			res, err := m.decodeFile(ctx, path)
			results[i] = res
			return err
		})
	}

	err := g.Wait()
	return results, err
}

// GetProgress returns the number of decoded files, failed files and data records so far.
func (m *Manager) GetProgress() (files, failed int32, records int64) {
	return atomic.LoadInt32(&m.decodedFiles), atomic.LoadInt32(&m.failedFiles), atomic.LoadInt64(&m.decodedRecords)
}

// decodeFile returns a non-nil error only for failures that must stop the whole run.
func (m *Manager) decodeFile(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res, err
	}

	m.progress(ProgressEvent{Path: path, Message: fmt.Sprintf("Decoding %s", path), Level: LevelVerbose})
	start := time.Now()

	var callbackErr error
	opts := linecsv.FileOptions{Setup: m.settings.ConfigureDecoder}
	if m.onHeader != nil {
		opts.OnHeader = func(header linecsv.Record) error {
			if err := m.onHeader(path, header); err != nil {
				callbackErr = err
				return err
			}
			return nil
		}
	}
	sum, err := linecsv.ParseFile(path, func(seq int, rec linecsv.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		atomic.AddInt64(&m.decodedRecords, 1)
		if m.onRecord == nil {
			return nil
		}
		if err := m.onRecord(path, seq, rec); err != nil {
			callbackErr = err
			return err
		}
		return nil
	}, opts)

	res.Summary = sum
	res.Elapsed = time.Since(start)
	res.Err = err

	if err != nil {
		atomic.AddInt32(&m.failedFiles, 1)
		m.progress(ProgressEvent{Path: path, Message: fmt.Sprintf("Error decoding %s: %v", path, err), Level: LevelError})
		if callbackErr != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		return res, nil
	}

	atomic.AddInt32(&m.decodedFiles, 1)
	m.progress(ProgressEvent{
		Path:    path,
		Message: fmt.Sprintf("Decoded %s: %d records in %s", path, sum.Records, res.Elapsed.Round(time.Millisecond)),
		Level:   LevelSuccess,
	})
	return res, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
