package prodirectory

// ProProfile профиль исполнителя из ProDirectory.
// Профиль отделён от учётной записи пользователя.
type ProProfile struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	HourlyRate  int64  `json:"hourly_rate"` // минорные единицы
	Status      string `json:"status"`      // active | suspended
}

// PayoutProfile платёжные реквизиты исполнителя
type PayoutProfile struct {
	ProProfileID      string `json:"pro_profile_id"`
	Method            string `json:"method"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	FullName          string `json:"full_name"`
	DocumentID        string `json:"document_id"`
	IsComplete        bool   `json:"is_complete"`
}

// ErrorResponse модель ошибки от ProDirectory
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
