package models

// Expense is one outgoing operational cost for a (year, month) period.
type Expense struct {
	ID          EntityID `json:"id"`
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	Description string   `json:"description"`
	Amount      int      `json:"amount"`
	Category    string   `json:"category"`
}

// CategoryTotal aggregates expense amounts per category for reporting.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   int     `json:"amount"`
	Share    float64 `json:"share"`
}

// ExpenseSummary is the monthly expense report payload.
type ExpenseSummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Total      int             `json:"total"`
	Count      int             `json:"count"`
	Categories []CategoryTotal `json:"categories"`
}
