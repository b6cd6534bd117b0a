// Package main provides a performance benchmarking tool for the cabcheck CLI.
// It measures how long `cabcheck check --all` takes for a set of cabinet setups,
// running each setup without a modeline cache and then with a SQLite cache, treating
// the first cached run as cold and averaging the rest as warm. Results go to a CSV file.
//
// Prerequisites:
// - cabcheck binary installed and available in PATH
// - One directory per setup under the base directory, each holding a .cabcheck.yaml
//   that points at its game database and modeline calculator
//
// Usage: go run benchmark/main.go [setup-base-dir]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Setup       string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	SetupBase   string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Setups      []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [setup-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		SetupBase:   os.Args[1],
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Setups:      []string{"crt-1p", "crt-2p", "lcd-4p-cocktail"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the cabcheck binary and setup directories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("cabcheck"); err != nil {
		return fmt.Errorf("cabcheck binary not found in PATH")
	}

	for _, setup := range config.Setups {
		cfgPath := filepath.Join(config.SetupBase, setup, ".cabcheck.yaml")
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			return fmt.Errorf("setup %s has no config at %s", setup, cfgPath)
		}
	}

	return nil
}

// runBenchmarks executes the no-cache and cache phases for every setup
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d setups, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Setups), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, setup := range config.Setups {
		fmt.Printf("Benchmarking %s\n", setup)
		setupDir := filepath.Join(config.SetupBase, setup)

		// Each setup starts with an empty cache
		clearCmd := exec.Command("cabcheck", "cache", "clear")
		clearCmd.Dir = setupDir
		if output, err := clearCmd.CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
		}

		_, noCacheAvg := runPhase(config, setupDir, "none", config.NoCacheRuns, "No-cache")
		coldTime, warmAvg := runPhase(config, setupDir, "sqlite", config.CacheRuns, "Cache")

		coldTimeStr := "TIMEOUT"
		if coldTime > 0 {
			coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
		}
		fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

		results = append(results, BenchmarkResult{
			Setup:       setup,
			NoCacheTime: noCacheAvg,
			ColdTime:    coldTimeStr,
			WarmTime:    warmAvg,
		})
	}

	return results
}

// runPhase runs one benchmark phase and averages the successful runs after the first
func runPhase(config BenchmarkConfig, setupDir, cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
	fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
	cold, times := runBenchmark(config, setupDir, cacheBackend, numRuns)
	if len(times) == 0 {
		return cold, "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// runBenchmark executes cabcheck check multiple times with the given cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, setupDir, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"check", "--all", "--cache-backend", cacheBackend}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("cabcheck", args...)
		cmd.Dir = setupDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Checked against") && strings.Contains(outputStr, "Cache backend:")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("cabcheck_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"setup", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Setup, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-16s: No-cache: %s, Cold: %s, Warm: %s\n", result.Setup, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
