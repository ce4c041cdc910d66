package worker

import (
	"context"
	"errors"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// NotifyTask describes a single notification to deliver.
type NotifyTask struct {
	ChatID    int64
	Text      string
	CreatedAt time.Time
}

// NotifyWorker доставляет уведомления асинхронно, чтобы запросы API
// не ждали внешний мессенджер. Доставка best-effort: после исчерпания
// повторов задача отбрасывается с записью в лог.
type NotifyWorker struct {
	notifier    domain.Notifier
	retryPolicy RetryPolicy
	queue       chan NotifyTask
	logger      *zerolog.Logger
}

// NewNotifyWorker builds a worker with sane defaults.
func NewNotifyWorker(notifier domain.Notifier, queueSize int, retry RetryPolicy, logger *zerolog.Logger) *NotifyWorker {
	if queueSize <= 0 {
		queueSize = 128
	}
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &NotifyWorker{
		notifier:    notifier,
		retryPolicy: retry,
		queue:       make(chan NotifyTask, queueSize),
		logger:      logger,
	}
}

// Enqueue ставит уведомление в очередь. Полная очередь — ошибка,
// отправитель не блокируется.
func (w *NotifyWorker) Enqueue(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return errors.New("notification text is required")
	}

	task := NotifyTask{ChatID: chatID, Text: text, CreatedAt: time.Now()}
	select {
	case w.queue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.New("notification queue is full")
	}
}

// Start запускает цикл доставки до отмены контекста.
func (w *NotifyWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NotifyWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.queue:
			w.deliver(ctx, task)
		}
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, task NotifyTask) {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		if err := w.notifier.Notify(ctx, task.ChatID, task.Text); err == nil {
			return
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}

	w.logger.Error().Err(lastErr).Int64("chat_id", task.ChatID).Msg("notification dropped after retries")
}
