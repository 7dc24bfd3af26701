package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/pipeline"
	"github.com/rgehrsitz/taxengine/internal/report"
)

// buildReportChain computes each return file in order and stores it as a
// successive report version — file 1 via CreateReport, every later file
// via UpdateReport — so `report versions`/`report verify` have a real
// chain to inspect in one CLI invocation, since this process has no
// durable store to read a prior run's versions back from (spec.md's
// Non-goals exclude a DB/ORM backing).
func buildReportChain(ctx context.Context, store *report.Store, reportID, tenantID string, files []string) error {
	p := pipeline.New(config.Load2025())

	for i, f := range files {
		tr, err := loadTaxReturn(f)
		if err != nil {
			return err
		}

		result, err := p.Calculate(ctx, pipeline.Request{TaxReturn: tr, Mode: pipeline.Strict})
		if err != nil {
			return fmt.Errorf("compute %s: %w", f, err)
		}
		if !result.Success {
			return fmt.Errorf("%s failed validation: %v", f, result.Errors)
		}

		content, err := toReportContent(result.Engine)
		if err != nil {
			return fmt.Errorf("marshal content for %s: %w", f, err)
		}

		if i == 0 {
			_, err = store.CreateReport(ctx, reportID, report.TypeTaxReturn, content, tenantID, "taxengine-cli", "initial computation", "")
		} else {
			_, err = store.UpdateReport(ctx, reportID, content, tenantID, "taxengine-cli", report.ChangeRecalculated, fmt.Sprintf("recomputed from %s", f), "")
		}
		if err != nil {
			return fmt.Errorf("store version for %s: %w", f, err)
		}
	}
	return nil
}

func toReportContent(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var content map[string]interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect a report's versioned computation history",
	}

	cmd.PersistentFlags().String("report-id", "cli-report", "report identifier")
	cmd.PersistentFlags().String("tenant", "default", "tenant identifier")

	cmd.AddCommand(reportVersionsCmd())
	cmd.AddCommand(reportVerifyCmd())
	return cmd
}

func reportVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions [return-file...]",
		Short: "Compute each return file as a successive report version and print the history",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportID, _ := cmd.Flags().GetString("report-id")
			tenantID, _ := cmd.Flags().GetString("tenant")

			store := report.NewStore(report.NewInMemoryRepository())
			ctx := context.Background()
			if err := buildReportChain(ctx, store, reportID, tenantID, args); err != nil {
				return err
			}

			history := store.GetVersionHistory(ctx, reportID, tenantID)
			out, err := json.MarshalIndent(history, "", "  ")
			if err != nil {
				return fmt.Errorf("encode history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func reportVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [return-file...]",
		Short: "Compute each return file as a successive report version and verify the chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportID, _ := cmd.Flags().GetString("report-id")
			tenantID, _ := cmd.Flags().GetString("tenant")

			store := report.NewStore(report.NewInMemoryRepository())
			ctx := context.Background()
			if err := buildReportChain(ctx, store, reportID, tenantID, args); err != nil {
				return err
			}

			result := store.VerifyChainIntegrity(ctx, reportID, tenantID)
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode verification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if !result.Valid {
				return fmt.Errorf("chain integrity check failed: %v", result.Issues)
			}
			return nil
		},
	}
}
