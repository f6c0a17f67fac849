package financial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/vatscope/internal/models"
)

func deposit(id string, year int, fileType models.FileType) models.Deposit {
	return models.Deposit{
		ID:             id,
		PeriodEndDate:  time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		DepositDate:    time.Date(year+1, 6, 30, 0, 0, 0, 0, time.UTC),
		ImportFileType: fileType,
	}
}

func ids(deposits []models.Deposit) []string {
	out := make([]string, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, d.ID)
	}
	return out
}

func TestSelectLatestYearDeposits(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SelectLatestYearDeposits(nil))
	})

	t.Run("keeps first year in order", func(t *testing.T) {
		deposits := []models.Deposit{
			deposit("a", 2023, models.FileTypePDF),
			deposit("b", 2023, "CSV"),
			deposit("c", 2022, "CSV"),
			deposit("d", 2023, "XBRL"),
			deposit("e", 2021, models.FileTypePDF),
		}
		assert.Equal(t, []string{"a", "b", "d"}, ids(SelectLatestYearDeposits(deposits)))
	})

	t.Run("uses first element not the maximum", func(t *testing.T) {
		deposits := []models.Deposit{
			deposit("old", 2020, "CSV"),
			deposit("new", 2023, "CSV"),
		}
		assert.Equal(t, []string{"old"}, ids(SelectLatestYearDeposits(deposits)))
	})
}

func TestChooseDeposit(t *testing.T) {
	t.Run("csv preferred over earlier pdf", func(t *testing.T) {
		chosen, ok := chooseDeposit([]models.Deposit{
			deposit("pdf", 2023, models.FileTypePDF),
			deposit("csv", 2023, "CSV"),
		})
		assert.True(t, ok)
		assert.Equal(t, "csv", chosen.ID)
	})

	t.Run("first pdf when only pdfs", func(t *testing.T) {
		chosen, ok := chooseDeposit([]models.Deposit{
			deposit("pdf-1", 2023, models.FileTypePDF),
			deposit("pdf-2", 2023, models.FileTypePDF),
		})
		assert.True(t, ok)
		assert.Equal(t, "pdf-1", chosen.ID)
	})

	t.Run("nothing to choose", func(t *testing.T) {
		_, ok := chooseDeposit(nil)
		assert.False(t, ok)
	})
}
