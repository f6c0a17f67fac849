package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ternarybob/vatscope/internal/services/financial"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the financial result cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached financial results, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <vat>",
	Short: "Drop the cached financial result of a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheDelete,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd, cacheDeleteCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	application, _, err := newApp(false)
	if err != nil {
		return err
	}
	defer application.Close()

	if application.Storage == nil {
		return fmt.Errorf("financial result cache is disabled")
	}

	results, err := application.Storage.ListFinancialResults(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VAT\tSIZE\tPERIOD END\tSOURCE\tEXTRACTED")
	for _, result := range results {
		size := "-"
		if result.Size != nil {
			size = result.Size.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			financial.FormatVATNumber(result.VATNumber),
			size,
			result.PeriodEnd.Format("2006-01-02"),
			result.Source,
			result.ExtractedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runCacheDelete(cmd *cobra.Command, args []string) error {
	vat, err := financial.NormalizeVATNumber(args[0])
	if err != nil {
		return err
	}

	application, _, err := newApp(false)
	if err != nil {
		return err
	}
	defer application.Close()

	if application.Storage == nil {
		return fmt.Errorf("financial result cache is disabled")
	}
	return application.Storage.DeleteFinancialResult(cmd.Context(), vat)
}
