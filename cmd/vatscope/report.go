package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/vatscope/internal/services/company"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report <vat>",
	Short: "Render the registry record of a company to PDF (or markdown for a .md output)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (default: <vat>.pdf)")
}

func runReport(cmd *cobra.Command, args []string) error {
	application, logger, err := newApp(false)
	if err != nil {
		return err
	}
	defer application.Close()

	record, err := application.CompanyBuilder.Build(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	output := reportOutput
	if output == "" {
		output = record.VATNumber + ".pdf"
	}

	markdown := company.RenderMarkdown(record)
	content := []byte(markdown)
	if !strings.EqualFold(filepath.Ext(output), ".md") {
		title := record.Name
		if title == "" {
			title = record.VATNumber
		}
		content, err = application.PDFService.ConvertMarkdownToPDF(markdown, title)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	if err := os.WriteFile(output, content, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info().Str("path", output).Int("bytes", len(content)).Msg("Report written")
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
