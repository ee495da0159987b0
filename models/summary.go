package models

// Summary is the server-computed aggregate over all transactions of the
// current user. The client displays it as is and never recomputes Balance.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}
