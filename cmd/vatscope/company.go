package main

import (
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:   "company <vat>",
	Short: "Build the registry record of a company and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompany,
}

func runCompany(cmd *cobra.Command, args []string) error {
	application, _, err := newApp(false)
	if err != nil {
		return err
	}
	defer application.Close()

	record, err := application.CompanyBuilder.Build(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), record)
}
