package domain

// clientActions действия, доступные владельцу бронирования
var clientActions = map[BookingAction]bool{
	ActionCreate:  true,
	ActionCancel:  true,
	ActionDispute: true,
}

// proActions действия, доступные назначенному исполнителю
var proActions = map[BookingAction]bool{
	ActionAccept:      true,
	ActionReject:      true,
	ActionMarkOnMyWay: true,
	ActionArrive:      true,
	ActionStart:       true,
	ActionFinish:      true,
	ActionComplete:    true,
}

// CanPerform decides whether the actor may perform the given lifecycle
// action on the booking. Pure function, exhaustive over Role:
//
//   - ADMIN is always allowed;
//   - CLIENT is allowed only for client-class actions on own bookings;
//   - PRO is allowed only for pro-class actions on bookings assigned to
//     the actor's pro profile (ProProfileID must be resolved beforehand).
//
// Any unknown role is denied.
func CanPerform(actor Actor, booking *Booking, action BookingAction) bool {
	switch actor.Role {
	case RoleAdmin:
		return true

	case RoleClient:
		if !clientActions[action] {
			return false
		}
		return booking.ClientUserID == actor.UserID

	case RolePro:
		if !proActions[action] {
			return false
		}
		if actor.ProProfileID == nil || booking.ProProfileID == nil {
			return false
		}
		return *booking.ProProfileID == *actor.ProProfileID

	default:
		return false
	}
}
