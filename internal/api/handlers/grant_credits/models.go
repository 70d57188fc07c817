package grant_credits

// GrantCreditsRequest HTTP request model
type GrantCreditsRequest struct {
	Amount int `json:"amount" validate:"required,gt=0,lte=1000"`
}
