// Command buddyctl is a demonstration front end over the buddy package:
// it is not part of the allocator's public contract, just a runnable
// face for exercising init/allocate/free/realloc sequences by hand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kallerosen/buddyalloc/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		sizeFlag uint64
	)

	root := &cobra.Command{
		Use:   "buddyctl",
		Short: "Exercise the binary buddy allocator from the command line",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().Uint64Var(&sizeFlag, "size", 0, "arena size in bytes (0 = default)")

	loadCfg := func() config.Config {
		if cfgPath == "" {
			return config.Default()
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return config.Default()
		}
		return cfg
	}

	root.AddCommand(newStatsCmd(loadCfg, &sizeFlag))
	root.AddCommand(newStressCmd(loadCfg, &sizeFlag))
	return root
}

func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
