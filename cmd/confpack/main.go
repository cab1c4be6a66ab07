// Confpack is the content author's tool: it verifies a config
// directory, packs verified snapshots for deploys, and re-verifies on
// every save in watch mode.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/steadling/farmcore/internal/verify"
)

var (
	configDir string
	outDir    string
	interval  time.Duration
)

func load() error {
	raw, err := verify.Parse(configDir)
	if err != nil {
		return err
	}
	cfg, err := raw.Verify()
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d items, %d plants, %d profile rungs\n",
		len(cfg.Items), len(cfg.Plants), cfg.Profile.Advancements.Len())
	return nil
}

func main() {
	root := &cobra.Command{
		Use:           "confpack",
		Short:         "verify and pack game content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", "./config", "content directory")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "parse and verify the content directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return load()
		},
	}

	packCmd := &cobra.Command{
		Use:   "pack",
		Short: "verify, then write json and binary snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := verify.Parse(configDir)
			if err != nil {
				return err
			}
			cfg, err := raw.Verify()
			if err != nil {
				return err
			}
			if err := verify.WriteSnapshots(outDir, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s/config.json and %s/config.gob.gz\n", outDir, outDir)
			return nil
		},
	}
	packCmd.Flags().StringVarP(&outDir, "out", "o", ".", "snapshot output directory")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "re-verify whenever a content file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			w := verify.NewWatcher(configDir, interval, func(path string) {
				log.Printf("%s changed", path)
				if err := load(); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
				}
			})
			w.Start()
			defer w.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
			return nil
		},
	}
	watchCmd.Flags().DurationVarP(&interval, "interval", "i", 2*time.Second, "poll interval")

	root.AddCommand(verifyCmd, packCmd, watchCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
