package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to scenario fixture JSON")
	verbose := flag.Bool("v", false, "print actual results for every example")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/scenarios.json [-v]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}
	rw, err := replay.BuildRewarder(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build rewarder: %v\n", err)
		os.Exit(2)
	}

	results, summary := replay.Replay(rw, f)
	os.Exit(printResults(f, results, summary, *verbose))
}

// #endregion main

// #region output

func printResults(f *replay.Fixture, results []replay.Result, summary replay.Summary, verbose bool) int {
	if f.Description != "" {
		fmt.Println(f.Description)
		fmt.Println()
	}

	fmt.Printf("%-24s| %-8s| %-7s| %s\n", "Example", "Reward", "Status", "Detail")
	fmt.Printf("%s+%s+%s+%s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 9), strings.Repeat("-", 8), strings.Repeat("-", 24))

	for _, res := range results {
		status := "OK"
		detail := ""
		if !res.Pass {
			status = "DIFF"
			detail = strings.Join(res.Mismatches, "; ")
		} else if verbose {
			detail = fmt.Sprintf("quality=%.2f found=%v missed=%v",
				res.Actual.ReasoningQuality, res.Actual.ViolationsFound, res.Actual.ViolationsMissed)
		}
		fmt.Printf("%-24s| %8.2f| %-7s| %s\n", res.ExampleID, res.Actual.Reward, status, detail)
	}

	fmt.Printf("\nSummary: %d total, %d pass, %d diverge, %d format failures, mean reward %.3f\n",
		summary.Total, summary.Passed, summary.Failed, summary.FormatFailures, summary.MeanReward)

	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// #endregion output
