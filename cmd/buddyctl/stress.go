package main

import (
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/kallerosen/buddyalloc/buddy"
	"github.com/kallerosen/buddyalloc/internal/config"
	"github.com/spf13/cobra"
)

func newStressCmd(loadCfg func() config.Config, sizeFlag *uint64) *cobra.Command {
	var ops int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a pseudo-random allocate/free/realloc sequence and report the final shape",
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

			rng := rand.New(rand.NewSource(cfg.Seed))
			runStress(&pool, rng, ops)

			fmt.Fprintf(cmd.OutOrStdout(), "completed %d operations\n", ops)
			printStats(cmd, pool.Stats())
			return nil
		},
	}
	cmd.Flags().IntVar(&ops, "ops", 1000, "number of allocate/free/realloc operations to perform")
	return cmd
}

// runStress drives pool through ops pseudo-random operations: it always
// allocates while the live set is empty and otherwise picks allocate,
// free or realloc with equal odds, so both the split and coalesce paths
// get exercised. Every block still live at the end is freed.
func runStress(pool *buddy.Pool, rng *rand.Rand, ops int) {
	var live []unsafe.Pointer

	for i := 0; i < ops; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) == 0:
			size := uint(1 + rng.Intn(4096))
			if ptr, err := pool.Allocate(size); err == nil {
				live = append(live, ptr)
			}
		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			pool.Free(live[idx])
			live = append(live[:idx], live[idx+1:]...)
		default:
			idx := rng.Intn(len(live))
			size := uint(1 + rng.Intn(4096))
			if ptr, err := pool.Reallocate(live[idx], size); err == nil {
				live[idx] = ptr
			}
		}
	}

	for _, ptr := range live {
		pool.Free(ptr)
	}
}
