package kbo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/vatscope/internal/models"
)

var (
	nacebelCode   = regexp.MustCompile(`^\d{2}\.\d{3}$`)
	postalLine    = regexp.MustCompile(`^(\d{4})\s+(.+)$`)
	streetAndBox  = regexp.MustCompile(`(?i)^(.*\d[A-Za-z]?)\s*,?\s+(?:bte|boîte|bus|box)\.?\s*(\S+)$`)
	streetAndNum  = regexp.MustCompile(`^(.*?)\s+(\d+[A-Za-z]?(?:[-/]\d+[A-Za-z]?)?)$`)
	labelSuffixes = strings.NewReplacer(":", "", "\u00a0", " ")
)

// entityField identifies a labelled row of the entity page
type entityField int

const (
	fieldUnknown entityField = iota
	fieldName
	fieldStatus
	fieldStartDate
	fieldLegalForm
	fieldAddress
)

// entityLabels maps the row labels of the French, Dutch, German and English pages
var entityLabels = map[string]entityField{
	"dénomination":              fieldName,
	"naam":                      fieldName,
	"name":                      fieldName,
	"statut":                    fieldStatus,
	"status":                    fieldStatus,
	"date de début":             fieldStartDate,
	"begindatum":                fieldStartDate,
	"anfangsdatum":              fieldStartDate,
	"start date":                fieldStartDate,
	"forme légale":              fieldLegalForm,
	"forme juridique":           fieldLegalForm,
	"rechtsvorm":                fieldLegalForm,
	"rechtsform":                fieldLegalForm,
	"legal form":                fieldLegalForm,
	"adresse du siège":          fieldAddress,
	"adres van de zetel":        fieldAddress,
	"adresse des sitzes":        fieldAddress,
	"registered seat's address": fieldAddress,
}

var activityHeadings = []string{"activités", "activiteiten", "tätigkeiten", "activities"}

// ParseEntityPage reads the identity, registered address and NACEBEL activity
// codes from the registry page of an enterprise.
func ParseEntityPage(html string) (*models.Company, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse entity page: %w", err)
	}

	root := doc.Find("div#table").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	company := &models.Company{}
	inActivities := false
	seenCodes := map[string]bool{}

	root.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if heading := row.Find("h2").First(); heading.Length() > 0 {
			inActivities = isActivityHeading(heading.Text())
			return
		}

		if inActivities {
			row.Find("a").Each(func(_ int, link *goquery.Selection) {
				code := strings.TrimSpace(link.Text())
				if nacebelCode.MatchString(code) && !seenCodes[code] {
					seenCodes[code] = true
					company.NACEBELCodes = append(company.NACEBELCodes, code)
				}
			})
			return
		}

		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		lines := cellLines(cells.Eq(1))
		if len(lines) == 0 {
			return
		}

		switch entityLabels[normalizeLabel(cells.Eq(0).Text())] {
		case fieldName:
			company.Name = lines[0]
		case fieldStatus:
			company.Status = lines[0]
		case fieldStartDate:
			company.StartDate = lines[0]
		case fieldLegalForm:
			company.LegalForm = lines[0]
		case fieldAddress:
			company.Address = ParseAddress(lines)
		}
	})

	if company.Name == "" && company.Address.IsEmpty() {
		return nil, ErrEntityNotFound
	}
	return company, nil
}

// ParseAddress reads the registry address lines: "Street 12 bte 3" then "1000 City".
func ParseAddress(lines []string) models.Address {
	var address models.Address
	for _, line := range lines {
		line = CleanAddress(line)
		if line == "" {
			continue
		}
		if m := postalLine.FindStringSubmatch(line); m != nil && address.PostalCode == "" {
			address.PostalCode = m[1]
			address.City = strings.TrimSpace(m[2])
			continue
		}
		if address.Street != "" {
			continue
		}
		if m := streetAndBox.FindStringSubmatch(line); m != nil {
			address.PostalBox = m[2]
			line = m[1]
		}
		if m := streetAndNum.FindStringSubmatch(line); m != nil {
			address.Street = strings.TrimSpace(m[1])
			address.StreetNumber = m[2]
		} else {
			address.Street = line
		}
	}
	return address
}

func isActivityHeading(text string) bool {
	lower := strings.ToLower(text)
	for _, heading := range activityHeadings {
		if strings.Contains(lower, heading) {
			return true
		}
	}
	return false
}

func normalizeLabel(text string) string {
	label := strings.TrimSpace(labelSuffixes.Replace(text))
	return strings.ToLower(whitespace.ReplaceAllString(label, " "))
}

// cellLines splits a cell on its line breaks, dropping the "upd" history notes
func cellLines(cell *goquery.Selection) []string {
	clone := cell.Clone()
	clone.Find(".upd").Remove()

	var lines []string
	for _, line := range strings.Split(breakText(clone, "\n"), "\n") {
		line = strings.TrimSpace(whitespace.ReplaceAllString(strings.ReplaceAll(line, "\u00a0", " "), " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// EntityTablesHTML returns the outer HTML of the entity data block, or the whole
// page when the block is missing.
func EntityTablesHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	block := doc.Find("div#table").First()
	if block.Length() == 0 {
		return html
	}
	out, err := goquery.OuterHtml(block)
	if err != nil {
		return html
	}
	return out
}
