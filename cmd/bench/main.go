// bench - Zinc fast-path benchmark runner
//
// For every grid in the corpus manifest it reports:
//   - which decoder the dispatcher would use (fast, or the rejection reason)
//   - fast-path decode time
//   - Zinc bytes vs Haystack JSON bytes for the decoded grid
//
// Output: CSV and markdown summary
//
// Usage:
//
//	bench [--iterations=N] [corpus-dir]
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Neumenon/zinc/internal/input"
	"github.com/Neumenon/zinc/zinc"
	"gopkg.in/yaml.v3"
)

type CaseResult struct {
	Name      string
	Path      string // "fast" or the decline kind
	Reason    string
	Rows      int
	ZincBytes int
	JSONBytes int
	NsPerOp   int64
	MBPerSec  float64
}

type Manifest struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Cases       []struct {
		Name string `yaml:"name"`
		File string `yaml:"file"`
	} `yaml:"cases"`
}

func main() {
	iterations := 200
	corpusDir := ""
	for _, arg := range os.Args[1:] {
		switch {
		case strings.HasPrefix(arg, "--iterations="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--iterations="))
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "invalid %s\n", arg)
				os.Exit(1)
			}
			iterations = n
		default:
			corpusDir = arg
		}
	}

	if corpusDir == "" {
		corpusDir = findTestdata()
	}
	if corpusDir == "" {
		fmt.Fprintln(os.Stderr, "Cannot find testdata/grids directory")
		os.Exit(1)
	}

	manifestData, err := os.ReadFile(filepath.Join(corpusDir, "manifest.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read manifest: %v\n", err)
		os.Exit(1)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse manifest: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Zinc Fast-Path Benchmark\n")
	fmt.Fprintf(os.Stderr, "========================\n")
	fmt.Fprintf(os.Stderr, "Corpus: %s (%d cases, %d iterations)\n\n", manifest.Version, len(manifest.Cases), iterations)

	var results []CaseResult
	for _, c := range manifest.Cases {
		text, err := input.ReadAll(filepath.Join(corpusDir, c.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", c.Name, err)
			continue
		}
		results = append(results, runCase(c.Name, text, iterations))
	}

	csvPath := "bench_results.csv"
	if f, err := os.Create(csvPath); err == nil {
		writeCSV(f, results)
		f.Close()
		fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
	}

	mdPath := "BENCH.md"
	if f, err := os.Create(mdPath); err == nil {
		writeMarkdown(f, results, manifest.Version, iterations)
		f.Close()
		fmt.Fprintf(os.Stderr, "Markdown written to: %s\n", mdPath)
	}

	fast := 0
	var zincTotal, jsonTotal int
	for _, r := range results {
		if r.Path == "fast" {
			fast++
			zincTotal += r.ZincBytes
			jsonTotal += r.JSONBytes
		}
	}
	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Cases:      %d\n", len(results))
	fmt.Printf("Fast path:  %d (%.1f%%)\n", fast, pct(fast, len(results)))
	fmt.Printf("Zinc total: %d bytes\n", zincTotal)
	fmt.Printf("JSON total: %d bytes (%+.1f%%)\n", jsonTotal, pct(jsonTotal-zincTotal, zincTotal))
}

func runCase(name, text string, iterations int) CaseResult {
	r := CaseResult{Name: name, ZincBytes: len(text)}

	g, err := zinc.ParseFast(text)
	if err != nil {
		var ze *zinc.Error
		if errors.As(err, &ze) {
			r.Path = ze.Kind.String()
			r.Reason = ze.Msg
			if ze.Line > 0 {
				r.Reason += fmt.Sprintf(" (line %d)", ze.Line)
			}
		} else {
			r.Path, r.Reason = "error", err.Error()
		}
		return r
	}

	r.Path = "fast"
	r.Rows = len(g.Rows)
	if js, err := json.Marshal(g); err == nil {
		r.JSONBytes = len(js)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		zinc.ParseFast(text)
	}
	elapsed := time.Since(start)
	r.NsPerOp = elapsed.Nanoseconds() / int64(iterations)
	if elapsed > 0 {
		r.MBPerSec = float64(len(text)*iterations) / elapsed.Seconds() / 1e6
	}
	return r
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func findTestdata() string {
	paths := []string{
		"testdata/grids",
		"zinc/testdata/grids",
		"../zinc/testdata/grids",
		"../../zinc/testdata/grids",
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(p, "manifest.yaml")); err == nil {
			return p
		}
	}
	return ""
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,path,rows,zinc_bytes,json_bytes,ns_per_op,mb_per_sec,reason")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d,%.2f,%q\n",
			r.Name, r.Path, r.Rows, r.ZincBytes, r.JSONBytes, r.NsPerOp, r.MBPerSec, r.Reason)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, version string, iterations int) {
	fmt.Fprintf(w, "# Zinc Fast-Path Benchmark Results\n\n")
	fmt.Fprintf(w, "**Date:** %s  \n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(w, "**Corpus:** %s (%d cases)  \n", version, len(results))
	fmt.Fprintf(w, "**Iterations:** %d  \n\n", iterations)

	fmt.Fprintf(w, "## Fast Path\n\n")
	fmt.Fprintf(w, "| Case | Rows | Zinc Bytes | JSON Bytes | ns/op | MB/s |\n")
	fmt.Fprintf(w, "|------|------|------------|------------|-------|------|\n")
	fast := make([]CaseResult, 0, len(results))
	for _, r := range results {
		if r.Path == "fast" {
			fast = append(fast, r)
		}
	}
	sort.Slice(fast, func(i, j int) bool { return fast[i].MBPerSec > fast[j].MBPerSec })
	for _, r := range fast {
		fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %.2f |\n",
			truncateName(r.Name, 25), r.Rows, r.ZincBytes, r.JSONBytes, r.NsPerOp, r.MBPerSec)
	}

	fmt.Fprintf(w, "\n## Declined\n\n")
	declined := len(results) - len(fast)
	if declined == 0 {
		fmt.Fprintf(w, "_None - every grid stays on the fast path._\n")
		return
	}
	fmt.Fprintf(w, "| Case | Kind | Reason |\n")
	fmt.Fprintf(w, "|------|------|--------|\n")
	for _, r := range results {
		if r.Path != "fast" {
			fmt.Fprintf(w, "| %s | %s | %s |\n", truncateName(r.Name, 25), r.Path, r.Reason)
		}
	}
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
