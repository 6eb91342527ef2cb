package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleClient Role = "CLIENT"
	RolePro    Role = "PRO"
	RoleAdmin  Role = "ADMIN"
)

// Actor представляет аутентифицированного участника, выполняющего действие.
// Для роли PRO поле ProProfileID заполняется через ProDirectory
// (профиль исполнителя отделён от учётной записи пользователя).
type Actor struct {
	UserID       string
	Role         Role
	ProProfileID *string
}

// BookingAction действие над бронированием в рамках жизненного цикла
type BookingAction string

const (
	ActionCreate         BookingAction = "create"
	ActionAccept         BookingAction = "accept"
	ActionReject         BookingAction = "reject"
	ActionMarkOnMyWay    BookingAction = "mark_on_my_way"
	ActionArrive         BookingAction = "arrive"
	ActionStart          BookingAction = "start"
	ActionFinish         BookingAction = "finish"
	ActionComplete       BookingAction = "complete"
	ActionDispute        BookingAction = "dispute"
	ActionCancel         BookingAction = "cancel"
	ActionConfirmPayment BookingAction = "confirm_payment"
	ActionMarkPaid       BookingAction = "mark_paid"
	ActionUnknown        BookingAction = "unknown"
)

// IsValidRole проверяет, что роль входит в закрытый перечень
func IsValidRole(r Role) bool {
	switch r {
	case RoleClient, RolePro, RoleAdmin:
		return true
	}
	return false
}
