package dto

type BalanceChangeRequestDTO struct {
	Amount float64 `json:"amount" example:"500"`
	Note   string  `json:"note" example:"manual adjustment"`
}

type BalanceChangeResponseDTO struct {
	Balance float64 `json:"balance" example:"500"`
}

type CreateUserRequestDTO struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role,omitempty"`
	Balance  float64 `json:"balance,omitempty"`
}

type UpdateUserRequestDTO struct {
	Field string `json:"field" example:"name"`
	Value any    `json:"value"`
}

type RejectRequestDTO struct {
	Reason string `json:"reason" example:"evidence unreadable"`
}

type StatsResponseDTO struct {
	TotalUsers         int     `json:"totalUsers"`
	TotalBalance       float64 `json:"totalBalance"`
	ActivatedUsers     int     `json:"activatedUsers"`
	PendingSubmissions int     `json:"pendingSubmissions"`
	TotalTransactions  int     `json:"totalTransactions"`
}
