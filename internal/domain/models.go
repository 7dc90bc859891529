package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive = "active"

	// AdminParty is the counterparty recorded on admin-initiated ledger
	// entries, SystemParty on platform-initiated ones.
	AdminParty  = "ADMIN"
	SystemParty = "system"

	TxAdminCredit   = "admin_credit"
	TxAdminDebit    = "admin_debit"
	TxActivationFee = "activation_fee"

	TxPending   = "pending"
	TxCompleted = "completed"

	MethodGiftCard = "giftcard"
	MethodUSDT     = "usdt"
	MethodCard     = "card"
)

type User struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Balance    float64 `json:"balance"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	Activated  bool    `json:"activated"`
	Created    int64   `json:"created"`
	CreatedBy  string  `json:"createdBy,omitempty"`
	AdminLevel string  `json:"adminLevel,omitempty"`
}

type Transaction struct {
	Type          string  `json:"type"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	FromName      string  `json:"fromName"`
	ToName        string  `json:"toName"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note"`
	Timestamp     int64   `json:"timestamp"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

type AdminLogEntry struct {
	Action    string `json:"action"`
	AdminID   string `json:"adminId"`
	Details   string `json:"details"`
	Timestamp int64  `json:"timestamp"`
	IP        string `json:"ip"`
}

type Submission struct {
	UserID        string   `json:"userId"`
	UserName      string   `json:"userName"`
	UserEmail     string   `json:"userEmail"`
	Method        string   `json:"method"`
	ActivationFee float64  `json:"activationFee"`
	Images        []string `json:"images,omitempty"`
	TxID          string   `json:"txid,omitempty"`
	CardNumber    string   `json:"cardNumber,omitempty"`
	Status        string   `json:"status"`
	Timestamp     int64    `json:"timestamp"`
	ApprovedBy    string   `json:"approvedBy,omitempty"`
	ApprovedAt    int64    `json:"approvedAt,omitempty"`
	RejectedBy    string   `json:"rejectedBy,omitempty"`
	RejectedAt    int64    `json:"rejectedAt,omitempty"`
	RejectReason  string   `json:"rejectReason,omitempty"`
}
