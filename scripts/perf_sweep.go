//go:build ignore

// Perf sweep over representative (range, count) generation cases.
// Writes one perf_data.csv row per case with the run statistics.
// Run with: go run scripts/perf_sweep.go
package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/KodiakMath/mathgen/services/exercise/generator"
)

var cases = []struct{ r, n int }{
	{10, 100},
	{10, 1000},
	{20, 1000},
	{20, 5000},
	{10, 10000},
	{20, 10000},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	f, err := os.Create("perf_data.csv")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create perf_data.csv: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"r", "n", "generated", "attempts", "duplicates", "zero_div", "op1", "op2", "op3", "time_ms"}
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	for _, c := range cases {
		fmt.Printf("Running r=%d, n=%d ...\n", c.r, c.n)
		gen := generator.New(nil, logger, generator.Limits{})
		batch, err := gen.Generate(c.r, c.n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate r=%d n=%d: %v\n", c.r, c.n, err)
			os.Exit(1)
		}

		s := batch.Stats
		row := []string{
			strconv.Itoa(c.r),
			strconv.Itoa(c.n),
			strconv.Itoa(batch.Generated()),
			strconv.Itoa(s.Attempts),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.ZeroDiv),
			strconv.Itoa(s.OpHistogram[0]),
			strconv.Itoa(s.OpHistogram[1]),
			strconv.Itoa(s.OpHistogram[2]),
			strconv.FormatInt(s.Elapsed.Milliseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "write row: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote perf_data.csv with %d case rows\n", len(cases))
}
