package models

// CompanySize is the EU size bracket of a company
type CompanySize string

const (
	CompanySizeMicro  CompanySize = "micro"
	CompanySizeSmall  CompanySize = "small"
	CompanySizeMedium CompanySize = "medium"
	CompanySizeLarge  CompanySize = "large"
)

// SizePtr returns a pointer to the given size
func SizePtr(s CompanySize) *CompanySize {
	return &s
}

// String implements fmt.Stringer
func (s CompanySize) String() string {
	return string(s)
}
