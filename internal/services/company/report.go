package company

import (
	"fmt"
	"strings"

	"github.com/ternarybob/vatscope/internal/models"
	"github.com/ternarybob/vatscope/internal/services/financial"
)

var cellEscaper = strings.NewReplacer("|", "\\|", "\n", " ")

// RenderMarkdown renders a company record as a markdown report
func RenderMarkdown(company *models.Company) string {
	var sb strings.Builder

	title := company.Name
	if title == "" {
		title = financial.FormatVATNumber(company.VATNumber)
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("## Identification\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	writeRow(&sb, "VAT number", financial.FormatVATNumber(company.VATNumber))
	writeRow(&sb, "Legal form", company.LegalForm)
	writeRow(&sb, "Status", company.Status)
	writeRow(&sb, "Start date", company.StartDate)
	sb.WriteString("\n")

	if !company.Address.IsEmpty() {
		sb.WriteString("## Registered address\n\n")
		sb.WriteString("| Field | Value |\n|---|---|\n")
		writeRow(&sb, "Address", company.Address.FullAddress())
		writeRow(&sb, "Region", company.Address.Region)
		writeRow(&sb, "Province", company.Address.Province)
		sb.WriteString("\n")
	}

	if len(company.NACEBELCodes) > 0 {
		sb.WriteString("## Activities\n\n")
		for _, code := range company.NACEBELCodes {
			fmt.Fprintf(&sb, "- NACEBEL %s\n", code)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Financial data\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	size := "unknown"
	if company.Financial.CompanySize != nil {
		size = company.Financial.CompanySize.String()
	}
	writeRow(&sb, "Company size", size)
	writeRow(&sb, "Employees", formatOptional(company.Financial.NumberOfEmployees))
	writeRow(&sb, "Gross margin (EUR)", formatOptional(company.Financial.GrossMargin))
	sb.WriteString("\n")

	if len(company.EstablishmentUnits) > 0 {
		fmt.Fprintf(&sb, "## Establishment units (%d)\n\n", len(company.EstablishmentUnits))
		sb.WriteString("| Number | Status | Start date | Denomination | Address |\n|---|---|---|---|---|\n")
		for _, unit := range company.EstablishmentUnits {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				cellEscaper.Replace(unit.EstablishmentNumber),
				cellEscaper.Replace(unit.Status),
				cellEscaper.Replace(unit.StartDate),
				cellEscaper.Replace(unit.Denomination),
				cellEscaper.Replace(unit.Address))
		}
		sb.WriteString("\n")
	}

	if len(company.Errors) > 0 {
		sb.WriteString("## Incomplete data\n\n")
		for _, msg := range company.Errors {
			fmt.Fprintf(&sb, "- %s\n", msg)
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeRow(sb *strings.Builder, field, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(sb, "| %s | %s |\n", field, cellEscaper.Replace(value))
}

func formatOptional(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
