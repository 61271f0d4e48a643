package models

// Fee categories.
const (
	FeeCategoryMonthly = "monthly"
	FeeCategoryFine    = "fine"
)

// FeeConfig defines one billable concept with a validity window and
// optional constraints. Months are 0-indexed (0 = January) throughout.
type FeeConfig struct {
	ID            EntityID `json:"id"`
	Name          string   `json:"name"`
	DefaultAmount int      `json:"defaultAmount"`
	StartYear     int      `json:"startYear"`
	StartMonth    int      `json:"startMonth"`
	// EndYear/EndMonth close the validity window inclusively.
	// Both nil means the fee is open-ended.
	EndYear  *int `json:"endYear,omitempty"`
	EndMonth *int `json:"endMonth,omitempty"`
	// ApplicableMonths restricts charging to the listed month indices.
	// Nil or empty means the fee applies every month inside the window.
	ApplicableMonths []int  `json:"applicableMonths,omitempty"`
	Category         string `json:"category,omitempty"`
	// TargetHouseIDs is only meaningful for fines. A nil slice means no
	// targeting; a present list (even empty) restricts the fine to the
	// listed houses exclusively.
	TargetHouseIDs []EntityID `json:"targetHouseIds,omitempty"`
}

// Closed reports whether the fee has an explicit end to its validity window.
func (f FeeConfig) Closed() bool {
	return f.EndYear != nil && f.EndMonth != nil
}

// IsFine reports whether this fee is a fine.
func (f FeeConfig) IsFine() bool {
	return f.Category == FeeCategoryFine
}
