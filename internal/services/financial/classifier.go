package financial

import (
	"strings"

	"github.com/ternarybob/vatscope/internal/models"
)

// sizeBracket is one EU size threshold; revenue and assets are in millions of euros
type sizeBracket struct {
	size         models.CompanySize
	maxEmployees float64 // exclusive
	maxRevenue   float64
	maxAssets    float64
}

var sizeBrackets = []sizeBracket{
	{size: models.CompanySizeMicro, maxEmployees: 10, maxRevenue: 2, maxAssets: 2},
	{size: models.CompanySizeSmall, maxEmployees: 50, maxRevenue: 10, maxAssets: 10},
	{size: models.CompanySizeMedium, maxEmployees: 250, maxRevenue: 50, maxAssets: 43},
}

// ClassifyByFinancials applies the EU size thresholds. A bracket matches when the
// employee count is below its ceiling and a non-zero revenue or asset figure is
// within its ceiling. All-zero input has no usable data and yields nil.
func ClassifyByFinancials(employees, revenue, assets float64) *models.CompanySize {
	if employees == 0 && revenue == 0 && assets == 0 {
		return nil
	}

	revenueM := revenue / 1_000_000
	assetsM := assets / 1_000_000

	for _, bracket := range sizeBrackets {
		if employees >= bracket.maxEmployees {
			continue
		}
		revenueFits := revenueM != 0 && revenueM <= bracket.maxRevenue
		assetsFits := assetsM != 0 && assetsM <= bracket.maxAssets
		if revenueFits || assetsFits {
			return models.SizePtr(bracket.size)
		}
	}
	return models.SizePtr(models.CompanySizeLarge)
}

// Classifier maps annual accounts to a company size, falling back to the filing
// model when the figures are unusable
type Classifier struct {
	microModels       map[string]struct{}
	abbreviatedModels map[string]struct{}
}

// NewClassifier creates a classifier with the given model code sets
func NewClassifier(microModels, abbreviatedModels []string) *Classifier {
	return &Classifier{
		microModels:       toSet(microModels),
		abbreviatedModels: toSet(abbreviatedModels),
	}
}

// ClassifyByModelCode maps a micro model to micro and an abbreviated model to small
func (c *Classifier) ClassifyByModelCode(modelCode string) *models.CompanySize {
	key := normalizeModelCode(modelCode)
	if key == "" {
		return nil
	}
	if _, ok := c.microModels[key]; ok {
		return models.SizePtr(models.CompanySizeMicro)
	}
	if _, ok := c.abbreviatedModels[key]; ok {
		return models.SizePtr(models.CompanySizeSmall)
	}
	return nil
}

// Classify uses the figures first and the model code when they yield no size
func (c *Classifier) Classify(account models.AnnualAccount) *models.CompanySize {
	if account.HasFigures() {
		if size := ClassifyByFinancials(account.EmployeesOrZero(), account.RevenueOrZero(), account.AssetsOrZero()); size != nil {
			return size
		}
	}
	return c.ClassifyByModelCode(account.ModelCode)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if key := normalizeModelCode(v); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func normalizeModelCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
