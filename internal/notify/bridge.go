package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/events"

	"github.com/rs/zerolog"
)

// Bridge подписывает воркер уведомлений на события бронирований:
// каждое событие превращается в сообщение в чат владельцев.
type Bridge struct {
	worker domain.NotifyWorker
	chatID int64
	logger *zerolog.Logger
}

func NewBridge(worker domain.NotifyWorker, chatID int64, logger *zerolog.Logger) *Bridge {
	return &Bridge{worker: worker, chatID: chatID, logger: logger}
}

// Subscribe регистрирует обработчики на шине событий.
func (b *Bridge) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, b.handleBooking("новое бронирование"))
	bus.Subscribe(events.EventBookingApproved, b.handleBooking("бронирование подтверждено"))
	bus.Subscribe(events.EventBookingRejected, b.handleBooking("бронирование отклонено"))
}

func (b *Bridge) handleBooking(title string) events.EventHandler {
	return func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			b.logger.Error().Err(err).Str("event_type", event.Type).Msg("decode event payload")
			return err
		}

		text := fmt.Sprintf("%s: «%s» #%d, %s — %s",
			title,
			payload.ItemName,
			payload.BookingID,
			payload.Start.Format("2006-01-02"),
			payload.End.Format("2006-01-02"),
		)

		if err := b.worker.Enqueue(context.Background(), b.chatID, text); err != nil {
			b.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("enqueue notification")
			return err
		}
		return nil
	}
}
