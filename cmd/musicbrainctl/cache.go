package main

import (
	"fmt"

	"github.com/Conceptual-Machines/musicbrain-api/internal/jsoncache"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "JSON cache utilities",
	}
	cmd.AddCommand(newCacheBenchCmd())
	return cmd
}

func newCacheBenchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Compare a cold load of a JSON file with cached loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := jsoncache.New(0)
			result, err := cache.Benchmark(args[0], iterations)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Benchmarking: %s\n", args[0])
			fmt.Fprintf(out, "First load: %.2fms\n", ms(result.FirstLoad.Nanoseconds()))
			fmt.Fprintf(out, "Cached avg: %.4fms\n", ms(result.AvgCached.Nanoseconds()))
			fmt.Fprintf(out, "Speedup: %.1fx\n", result.Speedup)

			info := cache.Info()
			fmt.Fprintf(out, "Cache info: hits=%d misses=%d size=%d capacity=%d\n",
				info.Hits, info.Misses, info.Size, info.Capacity)
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "number of cached loads")
	return cmd
}

func ms(ns int64) float64 {
	return float64(ns) / 1e6
}
