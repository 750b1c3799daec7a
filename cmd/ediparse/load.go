package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/db"
	"github.com/gyeh/ediclaims/internal/exitcode"
	"github.com/gyeh/ediclaims/internal/load"
	"github.com/gyeh/ediclaims/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load <input>",
	Short: "Parse a claim file and load it into Postgres",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&cfg.Force, "force", false, "Re-load even if file SHA already exists")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, args[0], cfg.Force)
	if err != nil {
		if pe, ok := err.(*load.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "parse":
				os.Exit(exitcode.UsageError)
			default:
				os.Exit(exitcode.LoadError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.LoadError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("File already loaded (claim_file_id %d); use --force to re-load\n", summary.ClaimFileID)
		return nil
	}

	fmt.Printf("Load complete: %d claims, %d service lines (%.1fs)\n",
		summary.ClaimsLoaded, summary.ServicesLoaded, summary.DurationTotal.Seconds())
	return nil
}
