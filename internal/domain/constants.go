package domain

// ServiceCategory категория услуги
type ServiceCategory string

const (
	CategoryPlumbing    ServiceCategory = "PLUMBING"
	CategoryElectricity ServiceCategory = "ELECTRICITY"
	CategoryCleaning    ServiceCategory = "CLEANING"
	CategoryPainting    ServiceCategory = "PAINTING"
	CategoryGardening   ServiceCategory = "GARDENING"
	CategoryMoving      ServiceCategory = "MOVING"
	CategoryCarpentry   ServiceCategory = "CARPENTRY"
	CategoryOther       ServiceCategory = "OTHER"
)

// DefaultCurrency валюта платформы (ISO 4217)
const DefaultCurrency = "ARS"

// Business validation constants
const (
	MinHoursEstimate  = 1
	MaxHoursEstimate  = 12
	MaxAddressLength  = 500
	MaxCategoryLength = 50
)

// Platform fee defaults, basis points (1/100 of a percent).
// 1000 bps = 10%.
const DefaultPlatformFeeBps = 1000

// TopProCompletedJobsThreshold порог завершённых заказов для статуса "top pro".
// Плоский порог без учёта давности - временное бизнес-правило.
const TopProCompletedJobsThreshold = 10

// TerminalStatuses список терминальных статусов бронирования
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCanceled,
	StatusPaid,
}

// AllBookingStatuses перечень всех допустимых статусов бронирования
var AllBookingStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusPendingProConfirmation,
	StatusAccepted,
	StatusRejected,
	StatusOnMyWay,
	StatusArrived,
	StatusInProgress,
	StatusAwaitingClientApproval,
	StatusCompleted,
	StatusDisputed,
	StatusPaid,
	StatusCanceled,
}

// ValidCategories перечень всех категорий услуг
var ValidCategories = []ServiceCategory{
	CategoryPlumbing,
	CategoryElectricity,
	CategoryCleaning,
	CategoryPainting,
	CategoryGardening,
	CategoryMoving,
	CategoryCarpentry,
	CategoryOther,
}

// IsValidCategory проверяет, что категория входит в допустимый перечень
func IsValidCategory(c ServiceCategory) bool {
	for _, valid := range ValidCategories {
		if c == valid {
			return true
		}
	}
	return false
}
