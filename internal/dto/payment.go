package dto

type USDTPaymentRequestDTO struct {
	TxID string `json:"txid" example:"0x9f2c4b..."`
}

type CardPaymentRequestDTO struct {
	Number string `json:"number" example:"4561261212345467"`
	Holder string `json:"holder" example:"J. DOE"`
	Expiry string `json:"expiry" example:"11/27"`
	CVV    string `json:"cvv" example:"123"`
}

type SubmissionResponseDTO struct {
	Message       string  `json:"message"`
	ActivationFee float64 `json:"activationFee" example:"10"`
	Status        string  `json:"status" example:"pending"`
}

type TransactionDTO struct {
	Type          string  `json:"type" example:"admin_credit"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	FromName      string  `json:"fromName"`
	ToName        string  `json:"toName"`
	Amount        float64 `json:"amount" example:"500"`
	Note          string  `json:"note"`
	Timestamp     int64   `json:"timestamp"`
	Status        string  `json:"status" example:"completed"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

type DashboardResponseDTO struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Balance      float64          `json:"balance" example:"500"`
	Activated    bool             `json:"activated"`
	Transactions []TransactionDTO `json:"transactions"`
}
