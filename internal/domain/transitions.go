package domain

// BookingTransitions defines the valid booking status transitions.
// The key is the current status, the value is the set of allowed targets.
// This table is the single source of truth for the lifecycle: any pair
// not listed here is rejected, there is no implicit fallthrough.
//
// CANCELED is reachable from every non-terminal status except COMPLETED:
// a completed job has a captured payment and a credited earning, so it can
// only move forward to PAID. REJECTED, CANCELED and PAID are terminal and
// have no outgoing transitions.
var BookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment: {
		StatusPendingProConfirmation,
		StatusCanceled,
	},
	StatusPendingProConfirmation: {
		StatusAccepted,
		StatusRejected,
		StatusCanceled,
	},
	StatusAccepted: {
		StatusOnMyWay,
		StatusCanceled,
	},
	StatusOnMyWay: {
		StatusArrived,
		StatusCanceled,
	},
	StatusArrived: {
		StatusInProgress,
		StatusCanceled,
	},
	StatusInProgress: {
		StatusAwaitingClientApproval,
		StatusCanceled,
	},
	StatusAwaitingClientApproval: {
		StatusCompleted,
		StatusDisputed,
		StatusCanceled,
	},
	StatusCompleted: {
		StatusPaid,
	},
	StatusDisputed: {
		StatusCompleted,
		StatusPaid,
		StatusCanceled,
	},
	StatusRejected: {},
	StatusCanceled: {},
	StatusPaid:     {},
}

// CanTransition checks if a booking status move is allowed by the table
func CanTransition(from, to BookingStatus) bool {
	allowed, exists := BookingTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ActionForTarget возвращает действие жизненного цикла для целевого статуса.
// Используется для проверки прав: у каждого перехода свой класс действия.
func ActionForTarget(to BookingStatus) BookingAction {
	switch to {
	case StatusPendingProConfirmation:
		return ActionConfirmPayment
	case StatusAccepted:
		return ActionAccept
	case StatusRejected:
		return ActionReject
	case StatusOnMyWay:
		return ActionMarkOnMyWay
	case StatusArrived:
		return ActionArrive
	case StatusInProgress:
		return ActionStart
	case StatusAwaitingClientApproval:
		return ActionFinish
	case StatusCompleted:
		return ActionComplete
	case StatusDisputed:
		return ActionDispute
	case StatusPaid:
		return ActionMarkPaid
	case StatusCanceled:
		return ActionCancel
	default:
		return ActionUnknown
	}
}
