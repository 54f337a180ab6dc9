package lingua

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/output"
	"github.com/cmsdko/lingua/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ErrDuplicateName is returned for a batch transcript whose output name is
// already taken by an earlier transcript of the same batch.
var ErrDuplicateName = errors.New("duplicate output name")

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Workers is the number of transcripts extracted concurrently. Values
	// below 1 mean 1.
	Workers int
	// Log receives one line per transcript. Nil discards.
	Log *logger.Logger
}

// Result is one successful extraction.
type Result struct {
	Name   string         `json:"name"`
	ID     string         `json:"id"`
	Record *metric.Record `json:"-"`
}

// Failure is one transcript that produced no record.
type Failure struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Feature string `json:"feature,omitempty"`
	Error   string `json:"error"`
}

// BatchReport summarizes a batch run. Results keep input order.
type BatchReport struct {
	RunID     string    `json:"run_id"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Results   []Result  `json:"results"`
	Failures  []Failure `json:"failures"`
}

// Records returns the successful records in input order.
func (r *BatchReport) Records() []*metric.Record {
	out := make([]*metric.Record, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Record
	}
	return out
}

type outcome struct {
	rec *metric.Record
	err error
}

// RunBatch extracts every transcript on a pool of workers. A failing
// transcript is reported and never stops its siblings. Transcripts not yet
// started when ctx is cancelled fail with the context error. A transcript
// whose name, ignoring case, repeats an earlier one fails with
// ErrDuplicateName so that no record file is written twice.
func (e *Extractor) RunBatch(ctx context.Context, ts []Transcript, opts BatchOptions) *BatchReport {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("batch")
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(ts) && len(ts) > 0 {
		workers = len(ts)
	}

	report := &BatchReport{RunID: uuid.NewString(), Started: time.Now().UTC(), Total: len(ts)}
	ctx, span := e.tracer.Start(ctx, "lingua.batch")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch.run_id", report.RunID),
		attribute.Int("batch.size", len(ts)),
		attribute.Int("batch.workers", workers),
	)
	log.Info("batch started", "run_id", report.RunID, "transcripts", len(ts), "workers", workers)

	outcomes := make([]outcome, len(ts))
	claimed := make(map[string]int, len(ts))
	for i, t := range ts {
		key := strings.ToLower(t.name())
		if first, ok := claimed[key]; ok {
			err := fmt.Errorf("%w: %q is already used by transcript %d", ErrDuplicateName, t.name(), first+1)
			outcomes[i] = outcome{err: &TranscriptError{ID: t.ID, Feature: "output", Err: err}}
			log.Warn("transcript failed", "name", t.name(), "error", err)
			continue
		}
		claimed[key] = i
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes[i] = outcome{err: err}
					continue
				}
				start := time.Now()
				rec, err := e.Extract(ctx, ts[i])
				outcomes[i] = outcome{rec: rec, err: err}
				if err != nil {
					log.Warn("transcript failed", "name", ts[i].name(), "error", err)
					continue
				}
				log.Debug("transcript done", "name", ts[i].name(), "keys", rec.Len(), "elapsed", time.Since(start))
			}
		}()
	}
	for i := range ts {
		if outcomes[i].err == nil {
			jobs <- i
		}
	}
	close(jobs)
	wg.Wait()

	for i, o := range outcomes {
		t := ts[i]
		if o.err == nil {
			report.Results = append(report.Results, Result{Name: t.name(), ID: t.ID, Record: o.rec})
			continue
		}
		f := Failure{Name: t.name(), ID: t.ID, Error: o.err.Error()}
		var te *TranscriptError
		if errors.As(o.err, &te) {
			f.Feature = te.Feature
		}
		report.Failures = append(report.Failures, f)
	}
	report.Succeeded = len(report.Results)
	report.Finished = time.Now().UTC()
	span.SetAttributes(attribute.Int("batch.failures", len(report.Failures)))
	log.Info("batch finished", "run_id", report.RunID, "succeeded", report.Succeeded,
		"failed", len(report.Failures), "elapsed", report.Finished.Sub(report.Started))
	return report
}

// ManifestPath returns <dir>/batch_<runid>.json.
func (r *BatchReport) ManifestPath(dir string) string {
	return filepath.Join(dir, "batch_"+r.RunID+".json")
}

// Write stores one JSON record per success (plus a spreadsheet when
// spreadsheet is set), the batch-wide CSV table and the run manifest.
func (r *BatchReport) Write(dir string, spreadsheet bool) error {
	for _, res := range r.Results {
		path := output.RecordPath(dir, res.Name)
		if err := output.WriteJSON(path, res.Record); err != nil {
			return fmt.Errorf("write %s: %w", res.Name, err)
		}
		if spreadsheet {
			if err := output.WriteSpreadsheet(output.SpreadsheetPath(path), []*metric.Record{res.Record}); err != nil {
				return fmt.Errorf("write %s: %w", res.Name, err)
			}
		}
	}
	if len(r.Results) > 0 {
		if err := output.WriteCSV(filepath.Join(dir, output.TableName), r.Records()); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	if err := output.WriteJSON(r.ManifestPath(dir), r); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
