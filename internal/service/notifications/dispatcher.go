package notifications

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
)

// statusTemplate шаблон уведомления клиенту, ключ - новый статус бронирования
type statusTemplate struct {
	routingKey string
	subject    string
	body       string
}

// Тексты уведомлений клиенту по новому статусу бронирования
var bookingTemplates = map[domain.BookingStatus]statusTemplate{
	domain.StatusPendingProConfirmation: {
		routingKey: events.RKBookingPaymentConfirmed,
		subject:    "Pago confirmado",
		body:       "Recibimos tu pago. El profesional recibirá tu solicitud y te avisaremos cuando la acepte.",
	},
	domain.StatusAccepted: {
		routingKey: events.RKBookingAccepted,
		subject:    "¡Tu reserva fue aceptada!",
		body:       "Tu reserva fue aceptada por el profesional. Te notificaremos cuando esté en camino.",
	},
	domain.StatusRejected: {
		routingKey: events.RKBookingRejected,
		subject:    "Tu reserva fue rechazada",
		body:       "Lamentablemente, tu reserva fue rechazada. Podés buscar otro profesional disponible.",
	},
	domain.StatusOnMyWay: {
		routingKey: events.RKBookingOnMyWay,
		subject:    "El profesional está en camino",
		body:       "El profesional está en camino a tu ubicación.",
	},
	domain.StatusArrived: {
		routingKey: events.RKBookingArrived,
		subject:    "El profesional llegó",
		body:       "El profesional llegó a tu ubicación.",
	},
	domain.StatusInProgress: {
		routingKey: events.RKBookingStarted,
		subject:    "El trabajo comenzó",
		body:       "El profesional comenzó el trabajo.",
	},
	domain.StatusAwaitingClientApproval: {
		routingKey: events.RKBookingFinished,
		subject:    "El trabajo terminó",
		body:       "El profesional terminó el trabajo. Confirmá que todo esté en orden.",
	},
	domain.StatusCompleted: {
		routingKey: events.RKBookingCompleted,
		subject:    "Trabajo completado",
		body:       "El trabajo fue completado. ¡Gracias por usar la plataforma!",
	},
	domain.StatusDisputed: {
		routingKey: events.RKBookingDisputed,
		subject:    "Reclamo registrado",
		body:       "Registramos tu reclamo. Nuestro equipo lo revisará a la brevedad.",
	},
	domain.StatusCanceled: {
		routingKey: events.RKBookingCancelled,
		subject:    "Reserva cancelada",
		body:       "Tu reserva fue cancelada.",
	},
	domain.StatusPaid: {
		routingKey: events.RKBookingPaid,
		subject:    "Pago liquidado",
		body:       "El pago del trabajo fue liquidado al profesional.",
	},
}

// Dispatcher best-effort отправка уведомлений о событиях жизненного цикла.
// Вызывается ПОСЛЕ коммита смены статуса: ошибка доставки логируется
// и проглатывается, уже применённый переход она не откатывает.
type Dispatcher struct {
	publisher EventPublisher
	logger    Logger
}

// NewDispatcher создает новый dispatcher уведомлений
func NewDispatcher(publisher EventPublisher, logger Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger,
	}
}

// BookingCreated отправляет уведомление о создании бронирования
func (d *Dispatcher) BookingCreated(ctx context.Context, booking *domain.Booking) {
	event := events.BookingEvent{
		BookingID:    booking.ID,
		ClientUserID: booking.ClientUserID,
		Status:       string(booking.Status),
		Subject:      "Tu reserva fue creada",
		Body:         "Tu reserva fue creada exitosamente. Completá el pago para que el profesional reciba tu solicitud.",
	}
	if booking.ProProfileID != nil {
		event.ProProfileID = *booking.ProProfileID
	}

	if err := d.publisher.PublishJSON(ctx, events.RKBookingCreated, event); err != nil {
		d.logger.Error("NotificationDispatcher: failed to publish %s for booking=%s: %v",
			events.RKBookingCreated, booking.ID, err)
		return
	}

	d.logger.Info("NotificationDispatcher: published %s for booking=%s", events.RKBookingCreated, booking.ID)
}

// BookingStatusChanged отправляет уведомление о смене статуса бронирования.
// Fire-and-forget: результат доставки не влияет на успех вызвавшей операции.
func (d *Dispatcher) BookingStatusChanged(ctx context.Context, booking *domain.Booking) {
	tmpl, ok := bookingTemplates[booking.Status]
	if !ok {
		d.logger.Warn("NotificationDispatcher: no template for status=%s, booking=%s", booking.Status, booking.ID)
		return
	}

	event := events.BookingEvent{
		BookingID:    booking.ID,
		ClientUserID: booking.ClientUserID,
		Status:       string(booking.Status),
		Subject:      tmpl.subject,
		Body:         tmpl.body,
	}
	if booking.ProProfileID != nil {
		event.ProProfileID = *booking.ProProfileID
	}

	if err := d.publisher.PublishJSON(ctx, tmpl.routingKey, event); err != nil {
		d.logger.Error("NotificationDispatcher: failed to publish %s for booking=%s: %v",
			tmpl.routingKey, booking.ID, err)
		return
	}

	d.logger.Info("NotificationDispatcher: published %s for booking=%s", tmpl.routingKey, booking.ID)
}

// PaymentEvent отправляет уведомление о событии платежа
func (d *Dispatcher) PaymentEvent(ctx context.Context, routingKey string, event events.PaymentEvent) {
	if err := d.publisher.PublishJSON(ctx, routingKey, event); err != nil {
		d.logger.Error("NotificationDispatcher: failed to publish %s for payment=%s: %v",
			routingKey, event.PaymentID, err)
		return
	}
	d.logger.Info("NotificationDispatcher: published %s for payment=%s", routingKey, event.PaymentID)
}

// PayoutEvent отправляет уведомление о событии выплаты
func (d *Dispatcher) PayoutEvent(ctx context.Context, routingKey string, event events.PayoutEvent) {
	if err := d.publisher.PublishJSON(ctx, routingKey, event); err != nil {
		d.logger.Error("NotificationDispatcher: failed to publish %s for payout=%s: %v",
			routingKey, event.PayoutID, err)
		return
	}
	d.logger.Info("NotificationDispatcher: published %s for payout=%s", routingKey, event.PayoutID)
}
