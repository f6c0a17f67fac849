package kbo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/vatscope/internal/models"
)

var (
	sinceSuffix = regexp.MustCompile(`(Depuis|Sinds|Seit|Since)\b.*`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// ParseEstablishmentUnits reads the establishment list page. The unit table is
// table#vestiginglist, or the first table of the page. Rows need six cells:
// status, establishment number link, start date, denomination and address.
func ParseEstablishmentUnits(html string) ([]models.EstablishmentUnit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse establishment page: %w", err)
	}

	table := doc.Find("table#vestiginglist").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, ErrNoEstablishmentTable
	}

	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, fmt.Errorf("%w: table has no body", ErrNoEstablishmentTable)
	}

	units := []models.EstablishmentUnit{}
	tbody.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		number := ""
		if link := cells.Eq(2).Find("a").First(); link.Length() > 0 {
			number = strings.NewReplacer(".", "", " ", "").Replace(strings.TrimSpace(link.Text()))
		}

		units = append(units, models.EstablishmentUnit{
			Status:              cellText(cells.Eq(1)),
			EstablishmentNumber: number,
			StartDate:           cellText(cells.Eq(3)),
			Denomination:        cellText(cells.Eq(4)),
			Address:             CleanAddress(cellText(cells.Eq(5))),
		})
	})

	return units, nil
}

// CleanAddress drops the trailing "Depuis ..." validity note of a registry address
func CleanAddress(text string) string {
	return strings.TrimSpace(sinceSuffix.ReplaceAllString(text, ""))
}

// cellText returns the text of a cell with line breaks and non-breaking spaces
// turned into spaces and whitespace runs collapsed
func cellText(cell *goquery.Selection) string {
	text := strings.ReplaceAll(breakText(cell, " "), "\u00a0", " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// breakText returns the text below sel with every <br> written as sep
func breakText(sel *goquery.Selection, sep string) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, node *goquery.Selection) {
			switch goquery.NodeName(node) {
			case "br":
				b.WriteString(sep)
			case "#text":
				b.WriteString(node.Text())
			default:
				walk(node)
			}
		})
	}
	walk(sel)
	return b.String()
}
