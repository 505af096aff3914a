/*
Command selmatch evaluates CSS selector matching strategies over a corpus of
websites and writes a statistics report.

	selmatch [flags] <websites-dir>

Each sub-directory of websites-dir holds one HTML file plus its stylesheets.
The command runs every requested strategy over every site, verifies that all
strategies agree with the naive baseline, and emits per-run statistics as
YAML, JSON, or an HTML dashboard.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/selmatch/selmatch/corpus"
	"github.com/selmatch/selmatch/match"
	"github.com/selmatch/selmatch/report"
	"github.com/selmatch/selmatch/runner"
)

func main() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)

	out := flag.String("out", "", "output file (default stdout)")
	format := flag.String("format", "yaml", "report format: yaml, json or html")
	workers := flag.Int("workers", 0, "concurrent traversals (default one per CPU)")
	strategies := flag.String("strategies", "all", "comma-separated strategies to evaluate")
	matchesDir := flag.String("matches", "", "directory to dump canonical match sets into")
	noVerify := flag.Bool("no-verify", false, "skip verification against the naive baseline")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: selmatch [flags] <websites-dir>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	strats, err := parseStrategies(*strategies, !*noVerify)
	if err != nil {
		fail(err)
	}
	sites, err := corpus.Load(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	if len(sites) == 0 {
		fail(fmt.Errorf("no websites found under %q", flag.Arg(0)))
	}

	results := runner.Evaluate(sites, runner.Options{
		Workers:    *workers,
		Strategies: strats,
	})
	err = finishRun(results, finishOptions{
		verify:     !*noVerify,
		matchesDir: *matchesDir,
		out:        *out,
		format:     *format,
	})
	if err != nil {
		fail(err)
	}
}

type finishOptions struct {
	verify     bool
	matchesDir string
	out        string
	format     string
}

// finishRun verifies, dumps and reports the evaluation results. Every
// artifact is persisted before a verification failure is returned: diverging
// runs are exactly the ones whose canonical sets and statistics someone
// needs on disk to diff.
func finishRun(results []runner.Result, opts finishOptions) error {
	var divergences []runner.Divergence
	if opts.verify {
		var err error
		divergences, err = runner.Verify(results)
		if err != nil {
			return err
		}
		for _, d := range divergences {
			fmt.Fprint(os.Stderr, d.Dump())
		}
	}
	if opts.matchesDir != "" {
		if err := dumpMatches(opts.matchesDir, results); err != nil {
			return err
		}
	}
	if err := writeReport(opts.out, opts.format, report.Entries(results)); err != nil {
		return err
	}
	if len(divergences) > 0 {
		return fmt.Errorf("%d (site, strategy) pair(s) diverge from the naive baseline", len(divergences))
	}
	return nil
}

// parseStrategies resolves the -strategies flag. Verification needs the
// naive baseline, so it is forced into the set when enabled.
func parseStrategies(list string, verify bool) ([]match.Strategy, error) {
	if strings.TrimSpace(list) == "all" {
		return match.AllStrategies(), nil
	}
	var strats []match.Strategy
	haveNaive := false
	for _, name := range strings.Split(list, ",") {
		s, err := match.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if s == match.Naive {
			haveNaive = true
		}
		strats = append(strats, s)
	}
	if verify && !haveNaive {
		strats = append([]match.Strategy{match.Naive}, strats...)
	}
	return strats, nil
}

func writeReport(out, format string, entries []report.StatsEntry) error {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch strings.ToLower(format) {
	case "yaml":
		return report.WriteYAML(w, entries)
	case "json":
		return report.WriteJSON(w, entries)
	case "html":
		return report.WriteHTML(w, entries)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func dumpMatches(dir string, results []runner.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		name := fmt.Sprintf("%s-%s.yaml", r.Site, r.Strategy)
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		err = report.WriteMatchesYAML(f, report.Matches(r.Site, r.Canonical))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "selmatch:", err)
	os.Exit(1)
}
