package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"domainlookup/internal/platform/config"
	"domainlookup/internal/platform/logger"
	"domainlookup/internal/whois/app"
	"domainlookup/internal/whois/models"
	"domainlookup/internal/whois/tld"
)

func main() {
	root := &cobra.Command{
		Use:           os.Args[0],
		Short:         "Look up domain registration data over WHOIS and RDAP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(lookupEntry(), tldsEntry())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func lookupEntry() *cobra.Command {
	var (
		strategy  string
		maxFollow int
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "lookup [domain...]",
		Short: "Run live lookups and print one JSON result per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Lookup.Strategy = strategy
			}
			if cmd.Flags().Changed("max-follow") {
				cfg.Lookup.MaxFollow = maxFollow
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			results, err := lookup(ctx, cfg, args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			failed := 0
			for _, result := range results {
				if !result.Status {
					failed++
				}
				if err := printJSON(cmd.OutOrStdout(), result, pretty); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "whois", "lookup strategy: whois or rdap")
	cmd.Flags().IntVar(&maxFollow, "max-follow", 1, "referral hops when no server is pinned")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func tldsEntry() *cobra.Command {
	return &cobra.Command{
		Use:   "tlds",
		Short: "List the configured TLD to WHOIS server table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			router, err := tld.Load(cfg.Lookup.ServersFile, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Server.LogLevel))
			if err != nil {
				return err
			}
			for _, entry := range router.Entries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.TLD, entry.Server)
			}
			return nil
		},
	}
}

// lookup runs domains sequentially; logs go to logOut so stdout stays JSON.
func lookup(ctx context.Context, cfg config.Config, domains []string, logOut io.Writer) ([]models.LookupResult, error) {
	log := logger.NewWithWriter(logOut, cfg.Server.LogLevel)
	svc, err := app.NewLookupService(cfg.Lookup, log)
	if err != nil {
		return nil, err
	}

	results := make([]models.LookupResult, 0, len(domains))
	for _, domain := range domains {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, svc.Lookup(ctx, domain))
	}
	return results, nil
}

func printJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
