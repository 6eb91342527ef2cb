package paymentprovider

// PreauthRequest запрос на создание предавторизации
type PreauthRequest struct {
	Reference string `json:"reference"` // внутренний ID платежа
	Amount    int64  `json:"amount"`    // минорные единицы
	Currency  string `json:"currency"`
	Customer  string `json:"customer"` // ID клиента платформы
}

// PreauthResult результат создания предавторизации
type PreauthResult struct {
	ProviderReference string `json:"provider_reference"`
	CheckoutURL       string `json:"checkout_url"`
	Status            string `json:"status"` // created | requires_action
}

// CaptureRequest запрос на списание авторизованной суммы
type CaptureRequest struct {
	Amount int64 `json:"amount"` // минорные единицы
}

// CaptureResult результат списания
type CaptureResult struct {
	AmountCaptured int64 `json:"amount_captured"`
}

// PaymentState состояние платежа на стороне провайдера (ground truth)
type PaymentState struct {
	ProviderReference string `json:"provider_reference"`
	Status            string `json:"status"` // created | requires_action | authorized | captured | failed | cancelled | refunded
	AmountAuthorized  int64  `json:"amount_authorized"`
	AmountCaptured    int64  `json:"amount_captured"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
