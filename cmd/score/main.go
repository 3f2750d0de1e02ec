package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/profile"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/rewarder"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/server"
)

// #region main

func main() {
	input := flag.String("input", "-", "example JSON file ('-' = stdin)")
	profilePath := flag.String("profile", "", "path to profile YAML (local mode; empty = default profile)")
	url := flag.String("url", "", "score via a running verifier instead of locally")
	jsonOut := flag.Bool("json", false, "output result as JSON instead of a summary")
	flag.Parse()

	req, err := readExample(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read example: %v\n", err)
		os.Exit(2)
	}

	var result server.VerifyResponse
	if *url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err = server.NewClient(*url).Verify(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "remote verify: %v\n", err)
			os.Exit(1)
		}
	} else {
		result, err = scoreLocal(*profilePath, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}
	printSummary(result)
}

// #endregion main

// #region local-mode

func scoreLocal(profilePath string, req server.VerifyRequest) (server.VerifyResponse, error) {
	p := profile.Default()
	if profilePath != "" {
		loaded, err := profile.LoadFile(profilePath)
		if err != nil {
			return server.VerifyResponse{}, err
		}
		p = loaded
	}
	rw, err := rewarder.New(p, nil)
	if err != nil {
		return server.VerifyResponse{}, err
	}
	return server.VerifyResponse{
		ExampleID:          req.ExampleID,
		VerificationResult: rw.Verify(req.DishIngredients, req.Reasoning, req.FinalVerdict),
	}, nil
}

// #endregion local-mode

// #region io

func readExample(path string) (server.VerifyRequest, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return server.VerifyRequest{}, err
		}
		defer f.Close()
		r = f
	}
	var req server.VerifyRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return server.VerifyRequest{}, fmt.Errorf("decode example: %w", err)
	}
	return req, nil
}

func printSummary(result server.VerifyResponse) {
	fmt.Printf("Reward:            %.2f\n", result.Reward)
	fmt.Printf("Format OK:         %v\n", result.FormatOK)
	fmt.Printf("Verdict Correct:   %v\n", result.VerdictCorrect)
	fmt.Printf("Reasoning Quality: %.0f%%\n", result.ReasoningQuality*100)
	fmt.Printf("Violations Found:  %s\n", listOrDash(result.ViolationsFound))
	fmt.Printf("Violations Missed: %s\n", listOrDash(result.ViolationsMissed))
}

func listOrDash(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, ", ")
}

// #endregion io
