// Package batch converts many independent documents concurrently.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"furiganaparse/convert"
	"furiganaparse/reading"
)

// Document is one content file handed over by the container layer.
type Document struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// NewDocument wraps content with a fresh ID.
func NewDocument(name string, content []byte) Document {
	return Document{ID: uuid.NewString(), Name: name, Content: content}
}

// Result is the outcome for one document. Exactly one of Output and Err is
// set.
type Result struct {
	Document Document      `json:"document"`
	Output   []byte        `json:"-"`
	Err      error         `json:"-"`
	Elapsed  time.Duration `json:"elapsed"`
}

// DocumentError ties a conversion failure to its document.
type DocumentError struct {
	Name string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Name, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// TokenizerFactory builds a tokenizer for one worker.
type TokenizerFactory func() (reading.Tokenizer, error)

// ProgressFunc is called once per document, in input order.
type ProgressFunc func(done, total int, r Result)

// Config configures a Runner.
type Config struct {
	Workers      int // 0 means one worker
	Options      convert.Options
	NewTokenizer TokenizerFactory
	Progress     ProgressFunc
}

// Runner converts documents on a fixed number of workers, each with its own
// tokenizer.
type Runner struct {
	config Config
	log    zerolog.Logger
}

// NewRunner returns a Runner for the given configuration.
func NewRunner(config Config) *Runner {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Runner{
		config: config,
		log:    log.With().Str("component", "batch").Logger(),
	}
}

// Run converts docs and returns one result per document in input order. A
// failing document never stops its siblings; only ctx cancellation ends the
// run early, leaving ctx.Err() on the documents not yet converted.
func (r *Runner) Run(ctx context.Context, docs []Document) []Result {
	results := make([]Result, len(docs))
	if len(docs) == 0 {
		return results
	}

	jobs := make(chan int)
	done := make(chan int)
	workers := min(r.config.Workers, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range docs {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobs <- i:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			wk := worker{id: w, runner: r}
			for i := range jobs {
				results[i] = wk.convert(docs[i])
				done <- i
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	r.report(docs, results, done)

	if err := g.Wait(); err != nil {
		for i := range results {
			if results[i].Output == nil && results[i].Err == nil {
				results[i] = Result{Document: docs[i], Err: &DocumentError{Name: docs[i].Name, Err: err}}
			}
		}
	}
	return results
}

// report emits progress in input order as soon as every earlier document
// has finished.
func (r *Runner) report(docs []Document, results []Result, done <-chan int) {
	finished := make([]bool, len(docs))
	next := 0
	for i := range done {
		finished[i] = true
		for next < len(docs) && finished[next] {
			res := results[next]
			next++
			if res.Err != nil {
				r.log.Error().Err(res.Err).Str("document", res.Document.Name).Msg("conversion failed")
			} else {
				r.log.Info().Str("document", res.Document.Name).Dur("elapsed", res.Elapsed).Int("bytes", len(res.Output)).Msgf("%d of %d written", next, len(docs))
			}
			if r.config.Progress != nil {
				r.config.Progress(next, len(docs), res)
			}
		}
	}
}

type worker struct {
	id     int
	runner *Runner
	conv   *convert.Converter
}

// converter builds the worker's tokenizer on first use. A tokenizer that
// cannot be built leaves this worker's documents unannotated.
func (w *worker) converter() *convert.Converter {
	if w.conv != nil {
		return w.conv
	}
	var tok reading.Tokenizer
	if f := w.runner.config.NewTokenizer; f != nil && w.runner.config.Options.Mode != convert.ModeStrip {
		t, err := f()
		if err != nil {
			w.runner.log.Error().Err(err).Int("worker", w.id).Msg("tokenizer unavailable, documents stay unannotated")
		} else {
			tok = t
		}
	}
	w.conv = convert.NewConverter(tok, w.runner.config.Options)
	return w.conv
}

func (w *worker) convert(doc Document) Result {
	start := time.Now()
	out, err := w.converter().Convert(doc.Content)
	res := Result{Document: doc, Output: out, Elapsed: time.Since(start)}
	if err != nil {
		res.Output = nil
		res.Err = &DocumentError{Name: doc.Name, Err: err}
	}
	return res
}
