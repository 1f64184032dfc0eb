package main

import (
	"fmt"

	"github.com/kallerosen/buddyalloc/buddy"
	"github.com/kallerosen/buddyalloc/internal/config"
	"github.com/spf13/cobra"
)

func newStatsCmd(loadCfg func() config.Config, sizeFlag *uint64) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Initialize a pool and print its starting shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCfg()
			size := uintptr(cfg.ArenaSizeBytes)
			if *sizeFlag != 0 {
				size = uintptr(*sizeFlag)
			}

			var pool buddy.Pool
			if err := pool.Init(size, buddy.WithLogger(newLogger(cfg.Verbose))); err != nil {
				return err
			}
			defer pool.Destroy()

			printStats(cmd, pool.Stats())
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, s buddy.Stats) {
	fmt.Fprintf(cmd.OutOrStdout(), "kvalM=%d totalBytes=%d freeBytes=%d\n", s.KvalM, s.TotalBytes, s.FreeBytes)
	for _, c := range s.Classes {
		if c.FreeCount == 0 {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  class %2d: %d free block(s)\n", c.Kval, c.FreeCount)
	}
}
