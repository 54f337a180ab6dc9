// Command lingua merges, preprocesses and extracts linguistic measures from
// speech transcripts.
//
//	lingua merge      -in session.json [-out dir] [-name P01]
//	lingua preprocess -in transcript.json [-out dir] [-name P01]
//	lingua extract    [-lang en] [-task cookie_theft] file...
//	lingua batch      [-workers 8] dir|file...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/cmsdko/lingua"
	"github.com/cmsdko/lingua/internal/app"
	"github.com/cmsdko/lingua/internal/config"
	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/merge"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/output"
	"github.com/cmsdko/lingua/internal/preprocess"
	"github.com/cmsdko/lingua/pkg/logger"
)

const usage = `usage: lingua <command> [flags] [args]

commands:
  merge        join the interventions of a session into one transcript
  preprocess   clean, tokenize, lemmatize and stem a transcript
  extract      compute the measures of one or more transcripts
  batch        extract every transcript under the given directories

Run "lingua <command> -h" for the flags of a command.
`

// common holds the flags every command accepts.
type common struct {
	configPath string
	outDir     string
	language   string
	task       string
	id         string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", os.Getenv("LINGUA_CONFIG"), "YAML configuration file")
	fs.StringVar(&c.outDir, "out", "", "output directory (overrides output.dir)")
	fs.StringVar(&c.language, "lang", "", "default transcript language (English, Francais, en, fr)")
	fs.StringVar(&c.task, "task", "", "default picture-description task")
	fs.StringVar(&c.id, "id", "", "default participant ID")
}

func (c *common) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.outDir != "" {
		cfg.Output.Dir = c.outDir
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func (c *common) defaults() (lingua.Defaults, error) {
	d := lingua.Defaults{ID: c.id, Task: c.task}
	if c.language != "" {
		l, err := lang.Parse(c.language)
		if err != nil {
			return d, err
		}
		d.Language = l
	}
	return d, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "merge":
		err = runMerge(args)
	case "preprocess":
		err = runPreprocess(ctx, args)
	case "extract":
		err = runExtract(ctx, args)
	case "batch":
		err = runBatch(ctx, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "lingua: unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lingua: %v\n", err)
		os.Exit(1)
	}
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "session JSON file")
	name := fs.String("name", "", "output name (defaults to the participant ID)")
	fs.Parse(args)
	if *in == "" {
		return errors.New("merge: -in is required")
	}

	cfg, log, err := c.load()
	if err != nil {
		return err
	}
	s, err := merge.ReadFile(*in)
	if err != nil {
		return err
	}
	t := merge.Merge(s)
	file, err := merge.OutputName(t, *name)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Output.Dir, file)
	if err := output.WriteJSON(path, t); err != nil {
		return err
	}
	log.WithComponent("merge").Info("transcript merged", "path", path, "interventions", len(s.Test.Interventions))
	return nil
}

func runPreprocess(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preprocess", flag.ExitOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "transcript file (.json or .txt)")
	name := fs.String("name", "", "output name (defaults to the transcript ID)")
	fs.Parse(args)
	if *in == "" {
		return errors.New("preprocess: -in is required")
	}

	cfg, log, err := c.load()
	if err != nil {
		return err
	}
	d, err := c.defaults()
	if err != nil {
		return err
	}
	t, err := lingua.ReadTranscript(*in, d)
	if err != nil {
		return err
	}
	file, err := preprocess.OutputName(t.ID, *name)
	if err != nil {
		return err
	}
	provider, err := app.NewProvider(cfg.NLP)
	if err != nil {
		return err
	}
	res, err := preprocess.Run(ctx, provider, t.ID, t.Language, t.Text)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Output.Dir, file)
	if err := output.WriteJSON(path, res); err != nil {
		return err
	}
	log.WithComponent("preprocess").Info("transcript preprocessed", "path", path, "tokens", len(res.Tokens))
	return nil
}

func runExtract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var c common
	c.register(fs)
	excel := fs.Bool("excel", false, "also write a spreadsheet per transcript")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("extract: at least one transcript file is required")
	}

	cfg, log, err := c.load()
	if err != nil {
		return err
	}
	d, err := c.defaults()
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	log = log.WithComponent("extract")

	var records []*metric.Record
	written := make(map[string]string)
	for _, path := range fs.Args() {
		t, err := lingua.ReadTranscript(path, d)
		if err != nil {
			return err
		}
		key := strings.ToLower(t.Name)
		if prev, ok := written[key]; ok {
			return fmt.Errorf("%s: %w: %q is already used by %s", path, lingua.ErrDuplicateName, t.Name, prev)
		}
		written[key] = path
		rec, err := a.Extractor.Extract(ctx, t)
		if err != nil {
			return err
		}
		out := output.RecordPath(cfg.Output.Dir, t.Name)
		if err := output.WriteJSON(out, rec); err != nil {
			return err
		}
		if *excel || cfg.Output.Excel {
			if err := output.WriteSpreadsheet(output.SpreadsheetPath(out), []*metric.Record{rec}); err != nil {
				return err
			}
		}
		records = append(records, rec)
		log.Info("measures written", "transcript", t.ID, "path", out, "keys", rec.Len())
	}
	if cfg.Output.CSV {
		return output.WriteCSV(filepath.Join(cfg.Output.Dir, output.TableName), records)
	}
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var c common
	c.register(fs)
	workers := fs.Int("workers", 0, "concurrent transcripts (overrides batch.workers)")
	excel := fs.Bool("excel", false, "also write a spreadsheet per transcript")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("batch: at least one directory or file is required")
	}

	cfg, log, err := c.load()
	if err != nil {
		return err
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	d, err := c.defaults()
	if err != nil {
		return err
	}
	paths, err := collect(fs.Args())
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	// Unreadable files are reported like extraction failures.
	var ts []lingua.Transcript
	var unreadable []lingua.Failure
	for _, p := range paths {
		t, err := lingua.ReadTranscript(p, d)
		if err != nil {
			log.Warn("transcript skipped", "path", p, "error", err)
			unreadable = append(unreadable, lingua.Failure{Name: filepath.Base(p), Feature: "input", Error: err.Error()})
			continue
		}
		ts = append(ts, t)
	}

	report := a.Extractor.RunBatch(ctx, ts, lingua.BatchOptions{Workers: cfg.Batch.Workers, Log: log})
	report.Total += len(unreadable)
	report.Failures = append(report.Failures, unreadable...)
	if err := report.Write(cfg.Output.Dir, *excel || cfg.Output.Excel); err != nil {
		return err
	}
	if report.Succeeded == 0 && report.Total > 0 {
		return fmt.Errorf("batch %s: every transcript failed, see %s", report.RunID, report.ManifestPath(cfg.Output.Dir))
	}
	return nil
}

// collect expands directories into their .json and .txt files, sorted by
// name, skipping files written by earlier runs. Plain file arguments are kept
// as given.
func collect(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".json" && ext != ".txt") || generated(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func generated(name string) bool {
	return strings.HasSuffix(name, output.RecordSuffix) ||
		strings.HasSuffix(name, "_clean.json") ||
		(strings.HasPrefix(name, "batch_") && strings.HasSuffix(name, ".json"))
}
