package models

// GrantCreditsRequest начисление кредитов менти
type GrantCreditsRequest struct {
	MenteeID int64
	Amount   int
}

// BalanceResponse остаток кредитов менти
type BalanceResponse struct {
	MenteeID int64 `json:"menteeId"`
	Balance  int   `json:"balance"`
}
