package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"furiganaparse/batch"
	"furiganaparse/config"
	"furiganaparse/logger"
	"furiganaparse/reading"
	"furiganaparse/tokenize"
)

// sample chapters stand in for the content files of an unpacked book
var chapters = map[string]string{
	"chapter01.xhtml": `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="ja"><head><title>第一章</title></head>
<body>
<h1>第一章</h1>
<p>秋田県仙北市は市内を流れる入見内川の水位が高まっているため、午前8時40分、角館町西長野の283世帯649人に高齢者等避難の情報を出しました。</p>
<p>これは<ruby>大事<rt>・・</rt></ruby>な知らせです。</p>
</body></html>
`,
	"chapter02.xhtml": `<html><head><style>p { line-height: 2 }</style></head>
<body>
<p>5段階の警戒レベルのうちレベル3に当たる情報で、高齢者や体の不自由な人などに避難を始めるよう呼びかけています。</p>
</body></html>
`,
}

type reportEntry struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Bytes   int    `json:"bytes,omitempty"`
	Error   string `json:"error,omitempty"`
	Elapsed string `json:"elapsed"`
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config")
	}
	if err := logger.Init(cfg.LogLevel, cfg.Environment == "development"); err != nil {
		log.Fatal().Err(err).Msg("cannot init logger")
	}
	if err := logger.InitLogs(cfg.LogDir); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.LogDir).Msg("cannot init logs directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs := []batch.Document{
		batch.NewDocument("chapter01.xhtml", []byte(chapters["chapter01.xhtml"])),
		batch.NewDocument("chapter02.xhtml", []byte(chapters["chapter02.xhtml"])),
	}
	width := len(fmt.Sprint(len(docs)))

	runner := batch.NewRunner(batch.Config{
		Workers: cfg.Workers,
		Options: cfg.ConvertOptions(),
		NewTokenizer: func() (reading.Tokenizer, error) {
			return tokenize.New(tokenize.Dictionary(cfg.Dictionary))
		},
		Progress: func(done, total int, r batch.Result) {
			if r.Err != nil {
				fmt.Printf("%0*d of %d failed: %s: %v\n", width, done, total, r.Document.Name, r.Err)
				return
			}
			fmt.Printf("%0*d of %d written: %s %.1fKB\n", width, done, total, r.Document.Name, float64(len(r.Output))/1024)
		},
	})
	results := runner.Run(ctx, docs)

	report := make([]reportEntry, 0, len(results))
	failed := 0
	for _, r := range results {
		e := reportEntry{Name: r.Document.Name, ID: r.Document.ID, Bytes: len(r.Output), Elapsed: r.Elapsed.String()}
		if r.Err != nil {
			e.Error = r.Err.Error()
			failed++
		} else {
			fmt.Println(string(r.Output))
		}
		report = append(report, e)
	}

	if err := logger.LogJSON(cfg.LogDir, "report", map[string]any{
		"container": cfg.OutputName("sample.epub"),
		"mode":      cfg.ConvertOptions().Mode,
		"documents": report,
	}); err != nil {
		log.Error().Err(err).Msg("failed to write report")
	}
	if failed > 0 {
		log.Error().Int("failed", failed).Msg("some documents were not converted")
		os.Exit(1)
	}
}
