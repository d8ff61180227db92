package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/NomadCrew/splitly-backend/internal/balance"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/services"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	balancesGroup  string
	balancesFormat string
)

func init() {
	balancesCmd.Flags().StringVar(&balancesGroup, "group", "", "Group id")
	balancesCmd.Flags().StringVar(&balancesFormat, "format", "yaml", "Output format: yaml or json")
	_ = balancesCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(balancesCmd)
}

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Compute a group's balances straight from the backing store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := checkFormat(balancesFormat); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		backend, closeBackend, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeBackend()

		return printBalances(ctx, cmd.OutOrStdout(), backend, balancesGroup, balancesFormat)
	},
}

func checkFormat(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown format %q, want yaml or json", format)
}

func printBalances(ctx context.Context, w io.Writer, backend store.Backend, groupID, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	stores := services.NewStores(backend)
	agg := balance.NewAggregator(stores.Groups, stores.Persons, stores.Expenses, stores.Debtors)

	balances, err := agg.Compute(ctx, groupID)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(balances)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(balances); err != nil {
		return err
	}
	return enc.Close()
}
