package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

func strPtr(s string) *string { return &s }

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "bk-1",
		ClientUserID: "client-1",
		ProProfileID: strPtr("pro-1"),
		Status:       domain.StatusAccepted,
	}
}

func TestCanPerform_AdminAlwaysAllowed(t *testing.T) {
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	booking := testBooking()

	actions := []domain.BookingAction{
		domain.ActionAccept,
		domain.ActionCancel,
		domain.ActionComplete,
		domain.ActionDispute,
		domain.ActionConfirmPayment,
		domain.ActionMarkPaid,
	}
	for _, a := range actions {
		assert.True(t, domain.CanPerform(admin, booking, a), "admin denied %s", a)
	}
}

func TestCanPerform_ClientOwnBooking(t *testing.T) {
	owner := domain.Actor{UserID: "client-1", Role: domain.RoleClient}
	booking := testBooking()

	assert.True(t, domain.CanPerform(owner, booking, domain.ActionCancel))
	assert.True(t, domain.CanPerform(owner, booking, domain.ActionDispute))

	// Действия класса PRO клиенту недоступны даже на своём бронировании
	assert.False(t, domain.CanPerform(owner, booking, domain.ActionAccept))
	assert.False(t, domain.CanPerform(owner, booking, domain.ActionComplete))
	assert.False(t, domain.CanPerform(owner, booking, domain.ActionFinish))
	assert.False(t, domain.CanPerform(owner, booking, domain.ActionMarkPaid))
}

func TestCanPerform_ClientForeignBooking(t *testing.T) {
	stranger := domain.Actor{UserID: "client-2", Role: domain.RoleClient}
	booking := testBooking()

	assert.False(t, domain.CanPerform(stranger, booking, domain.ActionCancel))
	assert.False(t, domain.CanPerform(stranger, booking, domain.ActionDispute))
}

func TestCanPerform_ProAssigned(t *testing.T) {
	pro := domain.Actor{UserID: "user-9", Role: domain.RolePro, ProProfileID: strPtr("pro-1")}
	booking := testBooking()

	proActions := []domain.BookingAction{
		domain.ActionAccept,
		domain.ActionReject,
		domain.ActionMarkOnMyWay,
		domain.ActionArrive,
		domain.ActionStart,
		domain.ActionFinish,
		domain.ActionComplete,
	}
	for _, a := range proActions {
		assert.True(t, domain.CanPerform(pro, booking, a), "assigned pro denied %s", a)
	}

	// Действия класса CLIENT исполнителю недоступны
	assert.False(t, domain.CanPerform(pro, booking, domain.ActionCancel))
	assert.False(t, domain.CanPerform(pro, booking, domain.ActionDispute))
	assert.False(t, domain.CanPerform(pro, booking, domain.ActionMarkPaid))
}

func TestCanPerform_ProNotAssigned(t *testing.T) {
	other := domain.Actor{UserID: "user-8", Role: domain.RolePro, ProProfileID: strPtr("pro-2")}
	booking := testBooking()

	assert.False(t, domain.CanPerform(other, booking, domain.ActionAccept))
	assert.False(t, domain.CanPerform(other, booking, domain.ActionComplete))
}

func TestCanPerform_ProWithoutProfile(t *testing.T) {
	noProfile := domain.Actor{UserID: "user-7", Role: domain.RolePro}
	booking := testBooking()

	assert.False(t, domain.CanPerform(noProfile, booking, domain.ActionAccept))

	unassigned := testBooking()
	unassigned.ProProfileID = nil
	withProfile := domain.Actor{UserID: "user-9", Role: domain.RolePro, ProProfileID: strPtr("pro-1")}
	assert.False(t, domain.CanPerform(withProfile, unassigned, domain.ActionAccept))
}

func TestCanPerform_UnknownRoleDenied(t *testing.T) {
	ghost := domain.Actor{UserID: "x", Role: domain.Role("SUPPORT")}
	booking := testBooking()

	assert.False(t, domain.CanPerform(ghost, booking, domain.ActionCancel))
	assert.False(t, domain.CanPerform(ghost, booking, domain.ActionAccept))
}

func TestBooking_EstimatedAmount(t *testing.T) {
	b := testBooking()
	b.HourlyRateSnapshot = 150000
	b.HoursEstimate = 3
	assert.Equal(t, int64(450000), b.EstimatedAmount())

	flat := int64(999999)
	b.TotalAmount = &flat
	assert.Equal(t, flat, b.EstimatedAmount())
}

func TestBooking_IsTerminal(t *testing.T) {
	b := testBooking()

	for _, s := range domain.TerminalStatuses {
		b.Status = s
		assert.True(t, b.IsTerminal(), "status %s", s)
		assert.False(t, b.CanBeCancelled(), "status %s", s)
	}

	b.Status = domain.StatusInProgress
	assert.False(t, b.IsTerminal())
	assert.True(t, b.CanBeCancelled())
}

func TestCalculateIsTopPro(t *testing.T) {
	assert.False(t, domain.CalculateIsTopPro(0))
	assert.False(t, domain.CalculateIsTopPro(domain.TopProCompletedJobsThreshold-1))
	assert.True(t, domain.CalculateIsTopPro(domain.TopProCompletedJobsThreshold))
	assert.True(t, domain.CalculateIsTopPro(100))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, domain.IsValidRole(domain.RoleClient))
	assert.True(t, domain.IsValidRole(domain.RolePro))
	assert.True(t, domain.IsValidRole(domain.RoleAdmin))
	assert.False(t, domain.IsValidRole(domain.Role("SUPPORT")))
	assert.False(t, domain.IsValidRole(domain.Role("")))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, domain.IsValidCategory(domain.CategoryPlumbing))
	assert.True(t, domain.IsValidCategory(domain.CategoryOther))
	assert.False(t, domain.IsValidCategory(domain.ServiceCategory("MAGIC")))
}
