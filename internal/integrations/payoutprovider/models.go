package payoutprovider

// Money денежная сумма в минорных единицах
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Destination банковские реквизиты получателя выплаты
type Destination struct {
	Method            string `json:"method"` // BANK_TRANSFER
	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	FullName          string `json:"full_name,omitempty"`
	DocumentID        string `json:"document_id,omitempty"`
}

// CreatePayoutRequest запрос на создание выплаты у провайдера
type CreatePayoutRequest struct {
	Money       Money       `json:"money"`
	Destination Destination `json:"destination"`
	Reference   string      `json:"reference"` // внутренний ID выплаты
}

// CreatePayoutResult результат создания выплаты
type CreatePayoutResult struct {
	Provider          string `json:"provider"`
	ProviderReference string `json:"provider_reference"`
}

// PayoutState состояние выплаты на стороне провайдера
type PayoutState struct {
	ProviderReference string `json:"provider_reference"`
	Status            string `json:"status"` // created | sent | settled | failed
}
