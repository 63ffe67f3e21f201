package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/seoscout/internal"
	"github.com/starford/seoscout/internal/seo"
	"github.com/starford/seoscout/internal/trend"
)

var stdout io.Writer = os.Stdout

// openApp loads the config and wires the service. outputDir overrides the
// configured artifact directory when non-empty.
func openApp(cmd *cli.Command, outputDir string, tweak func(*internal.Config)) (*internal.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if tweak != nil {
		tweak(cfg)
	}
	opts := []internal.Option{internal.WithConfig(cfg)}
	if outputDir != "" {
		opts = append(opts, internal.WithOutputDir(outputDir))
	}
	return internal.NewApp(opts...)
}

func longtailFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "longtail",
		Usage: "Number of longtail queries to generate",
		Value: seo.DefaultLongtailCount,
	}
}

func longtailCount(cmd *cli.Command, app *internal.App) (int, error) {
	n := int(cmd.Int("longtail"))
	if !cmd.IsSet("longtail") {
		n = app.Config.Analysis.LongtailCount
	}
	if n < 0 {
		return 0, fmt.Errorf("longtail must not be negative")
	}
	return n, nil
}

func intentCommand() *cli.Command {
	return &cli.Command{
		Name:  "intent",
		Usage: "Analyse a keyword and save its report and site plan",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "word", Aliases: []string{"w"}, Usage: "Keyword to analyse", Required: true},
			longtailFlag(),
			&cli.StringFlag{Name: "output-dir", Usage: "Directory for the report and plan files"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, cmd.String("output-dir"), nil)
			if err != nil {
				return err
			}
			defer app.Close()

			count, err := longtailCount(cmd, app)
			if err != nil {
				return err
			}
			report, err := app.Service.Analyze(ctx, cmd.String("word"), count)
			if err != nil {
				return err
			}
			files, err := app.Service.SaveReport(report)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Intent report saved to: %s\n", files[0])
			fmt.Fprintf(stdout, "Site plan saved to:     %s\n", files[1])
			fmt.Fprintf(stdout, "Intent:     %s\n", report.Intent)
			fmt.Fprintf(stdout, "Longtails:  %d\n", len(report.LongtailWords))
			fmt.Fprintf(stdout, "Site type:  %s\n", report.SitePlan.Type)
			return nil
		},
	}
}

func outlineCommand() *cli.Command {
	return &cli.Command{
		Name:  "outline",
		Usage: "Generate a content outline from a plan file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "plan", Aliases: []string{"p"}, Usage: "Plan file (JSON, YAML or Markdown)", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Outline file to write (default: outline_<timestamp>.md in the output dir)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, name := "", ""
			if out := cmd.String("output"); out != "" {
				dir, name = filepath.Dir(out), filepath.Base(out)
			}
			app, err := openApp(cmd, dir, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Service.OutlineFile(ctx, cmd.String("plan"))
			if err != nil {
				return err
			}
			path, err := app.Service.SaveOutline(res, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Outline saved to: %s\n", path)
			fmt.Fprintf(stdout, "Outline kind:     %s\n", res.Outline.Type)
			fmt.Fprintf(stdout, "Word count:       %d\n", res.WordCount)
			fmt.Fprintf(stdout, "Reading time:     %d min\n", res.EstimatedReadingTime)
			return nil
		},
	}
}

// readKeywords returns the non-blank lines of path.
func readKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words, sc.Err()
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Analyse every keyword in a file and write a CSV summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "File with one keyword per line", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Summary CSV to write (default: batch_results.csv in the output dir)"},
			longtailFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			words, err := readKeywords(cmd.String("file"))
			if err != nil {
				return fmt.Errorf("read keywords: %w", err)
			}
			if len(words) == 0 {
				fmt.Fprintln(stdout, "No keywords found in file")
				return nil
			}

			dir, name := "", "batch_results.csv"
			if out := cmd.String("output"); out != "" {
				dir, name = filepath.Dir(out), filepath.Base(out)
			}
			app, err := openApp(cmd, dir, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			count, err := longtailCount(cmd, app)
			if err != nil {
				return err
			}
			results, err := app.Service.AnalyzeBatch(ctx, words, count)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					fmt.Fprintf(stdout, "Error processing %q: %s\n", r.Keyword, r.Error)
				}
			}
			path, err := app.Service.SaveBatch(results, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Results saved to: %s\n", path)
			fmt.Fprintf(stdout, "Processed:        %d/%d\n", seo.Succeeded(results), len(words))
			return nil
		},
	}
}

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Collect hot keywords, verify their trends and save the potential ones",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Target date (YYYY-MM-DD), defaults to today"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum keywords to collect", Value: 100},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
			&cli.DurationFlag{Name: "timeout", Usage: "Trends request timeout (default from config)"},
			&cli.FloatFlag{Name: "min-score", Usage: "Drop keywords whose trend score is below this"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := time.Now()
			if d := cmd.String("date"); d != "" {
				t, err := time.Parse("2006-01-02", d)
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
				}
				target = t
			}

			app, err := openApp(cmd, cmd.String("output"), func(cfg *internal.Config) {
				if cmd.IsSet("timeout") {
					cfg.Trends.Timeout = cmd.Duration("timeout")
				}
			})
			if err != nil {
				return err
			}
			defer app.Close()
			app.Logger.Info("discover: starting", slog.String("date", target.Format("2006-01-02")))

			records, err := app.Service.Discover(ctx, int(cmd.Int("limit")), cmd.Float("min-score"))
			if err != nil {
				return err
			}
			path, err := app.Service.SaveDiscovery(records)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Results saved to: %s\n", path)
			fmt.Fprintf(stdout, "Keywords found:   %d\n", len(records))
			if len(records) == 0 {
				return nil
			}
			fmt.Fprintln(stdout)
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEYWORD\tSEARCH VOLUME\tTREND SCORE\tCATEGORY")
			for _, r := range trend.Top(records, 10) {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\n", r.Keyword, r.SearchVolume, r.TrendScore, r.Category())
			}
			return tw.Flush()
		},
	}
}

func relatedCommand() *cli.Command {
	return &cli.Command{
		Name:  "related",
		Usage: "Show keywords related to a word through the search backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "word", Aliases: []string{"w"}, Usage: "Keyword", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, "", nil)
			if err != nil {
				return err
			}
			defer app.Close()

			words, err := app.Service.Related(ctx, cmd.String("word"))
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintln(stdout, w)
			}
			return nil
		},
	}
}

func limitFlag() *cli.IntFlag {
	return &cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum rows", Value: 20}
}

func optional[T int | float64](v *T) string {
	if v == nil {
		return "-"
	}
	switch x := any(*v).(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	return "-"
}

func keywordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "keywords",
		Usage: "List stored keywords",
		Flags: []cli.Flag{limitFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, "", nil)
			if err != nil {
				return err
			}
			defer app.Close()

			kws, err := app.Service.Keywords(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEYWORD\tINTENT\tSEARCH VOLUME\tTREND SCORE\tUPDATED")
			for _, k := range kws {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", k.Word, k.IntentType,
					optional(k.SearchVolume), optional(k.TrendScore), k.UpdatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List logged search engine requests",
		Flags: []cli.Flag{limitFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := openApp(cmd, "", nil)
			if err != nil {
				return err
			}
			defer app.Close()

			searches, err := app.Service.History(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tENGINE\tRESULTS\tQUERY")
			for _, s := range searches {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Timestamp.Format(time.DateTime), s.Engine, s.ResultsCount, s.Keyword)
			}
			return tw.Flush()
		},
	}
}
