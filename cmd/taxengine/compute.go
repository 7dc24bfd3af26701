package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/pipeline"
)

func loadTaxReturn(path string) (domain.TaxReturn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TaxReturn{}, fmt.Errorf("read %s: %w", path, err)
	}

	var tr domain.TaxReturn
	if err := json.Unmarshal(data, &tr); err != nil {
		return domain.TaxReturn{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return tr, nil
}

func computeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute [return-file]",
		Short: "Compute a federal return from a TaxReturn JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTaxReturn(args[0])
			if err != nil {
				return err
			}

			mode, _ := cmd.Flags().GetString("mode")
			useCache, _ := cmd.Flags().GetBool("cache")

			p := pipeline.New(config.Load2025())
			result, err := p.Calculate(context.Background(), pipeline.Request{
				TaxReturn: tr,
				Mode:      pipeline.Mode(mode),
				UseCache:  useCache,
			})
			if err != nil {
				return fmt.Errorf("compute: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().String("mode", string(pipeline.Strict), "validation mode (strict, lenient)")
	cmd.Flags().Bool("cache", false, "use the calculation cache")
	return cmd
}
