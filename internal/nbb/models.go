package nbb

import (
	"strings"
	"time"

	"github.com/ternarybob/vatscope/internal/models"
)

// DepositsResponse is the page of published deposits returned for one enterprise.
type DepositsResponse struct {
	Content       []DepositItem `json:"content"`
	TotalElements int           `json:"totalElements"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
}

// DepositItem is one published deposit as sent on the wire.
type DepositItem struct {
	ID             string `json:"id"`
	PeriodEndDate  string `json:"periodEndDate"`
	DepositDate    string `json:"depositDate"`
	ImportFileType string `json:"importFileType"`
	ModelType      string `json:"modelType,omitempty"`
	Language       string `json:"language,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate accepts the ISO-8601 forms the API has been seen to return.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ToDeposit converts the wire item. Items without a parseable period end date are rejected.
func (d DepositItem) ToDeposit() (models.Deposit, bool) {
	periodEnd, ok := parseDate(d.PeriodEndDate)
	if !ok || d.ID == "" {
		return models.Deposit{}, false
	}
	depositDate, _ := parseDate(d.DepositDate)
	return models.Deposit{
		ID:             d.ID,
		PeriodEndDate:  periodEnd,
		DepositDate:    depositDate,
		ImportFileType: models.FileType(strings.TrimSpace(d.ImportFileType)),
	}, true
}
