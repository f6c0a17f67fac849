package financial

import (
	"github.com/ternarybob/vatscope/internal/models"
)

// SelectLatestYearDeposits keeps the deposits whose period ends in the same
// calendar year as the first deposit. Input order is preserved and assumed to be
// most recent first, as returned by the deposit provider.
func SelectLatestYearDeposits(deposits []models.Deposit) []models.Deposit {
	if len(deposits) == 0 {
		return []models.Deposit{}
	}

	year := deposits[0].FiscalYear()
	selected := make([]models.Deposit, 0, len(deposits))
	for _, deposit := range deposits {
		if deposit.FiscalYear() == year {
			selected = append(selected, deposit)
		}
	}
	return selected
}

// chooseDeposit picks the deposit to extract from the latest-year subset:
// the first structured (non-PDF) deposit, else the first deposit when it is a PDF.
func chooseDeposit(selected []models.Deposit) (models.Deposit, bool) {
	for _, deposit := range selected {
		if !deposit.ImportFileType.IsPDF() {
			return deposit, true
		}
	}
	if len(selected) > 0 && selected[0].ImportFileType.IsPDF() {
		return selected[0], true
	}
	return models.Deposit{}, false
}
