package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/vatscope/internal/services/financial"
)

var refreshFinancial bool

var financialCmd = &cobra.Command{
	Use:   "financial <vat>",
	Short: "Print the company size and financial figures of a company as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runFinancial,
}

func init() {
	financialCmd.Flags().BoolVar(&refreshFinancial, "refresh", false, "Drop the cached result before extracting")
}

func runFinancial(cmd *cobra.Command, args []string) error {
	vat, err := financial.NormalizeVATNumber(args[0])
	if err != nil {
		return err
	}

	application, logger, err := newApp(false)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := cmd.Context()
	if refreshFinancial && application.Storage != nil {
		if err := application.Storage.DeleteFinancialResult(ctx, vat); err != nil {
			logger.Warn().Err(err).Str("vat_number", vat).Msg("Failed to drop cached result")
		}
	}

	result, err := application.FinancialService.GetSizeAndFinancialData(ctx, vat)
	if err != nil {
		return fmt.Errorf("financial data for %s: %w", financial.FormatVATNumber(vat), err)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
