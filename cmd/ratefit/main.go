// Package main sweeps temperature and concentration with headless runs and
// fits an apparent first-order rate constant to each reacted-fraction curve.
//
// Usage: go run ./cmd/ratefit -output results/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/kinetics/config"
)

// parseInts parses a comma-separated list of integers.
func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 1800, "Ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per combination")
	temps := flag.String("temperatures", "61,70,80,90,100", "Comma-separated temperatures")
	concs := flag.String("concentrations", "10,20,30,40,50", "Comma-separated concentrations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *ticks < 1 || *seeds < 1 {
		log.Fatal("--ticks and --seeds must be positive")
	}
	temperatures, err := parseInts(*temps)
	if err != nil {
		log.Fatalf("invalid --temperatures: %v", err)
	}
	concentrations, err := parseInts(*concs)
	if err != nil {
		log.Fatalf("invalid --concentrations: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	sweep := NewSweep(cfg, *ticks, evalSeeds)

	total := len(temperatures) * len(concentrations)
	results := make([]Result, 0, total)
	start := time.Now()

	fmt.Printf("Sweeping %d combinations, %d seeds x %d ticks each\n", total, *seeds, *ticks)
	for _, t := range temperatures {
		for _, c := range concentrations {
			r, err := sweep.Evaluate(t, c)
			if err != nil {
				log.Fatalf("temperature=%d concentration=%d: %v", t, c, err)
			}
			results = append(results, r)
			fmt.Printf("[%d/%d] T=%d C=%d: final=%.2f k=%.5f half-life=%.0f ticks (elapsed %s)\n",
				len(results), total, t, c, r.FinalFraction, r.RateK, r.HalfLife,
				time.Since(start).Round(time.Second))
		}
	}

	outPath := filepath.Join(*outputDir, "rates.csv")
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", outPath, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&results, f); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}

	if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		log.Printf("failed to write config: %v", err)
	}
	fmt.Printf("\nResults saved to: %s\n", outPath)
}
