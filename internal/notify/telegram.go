package notify

import (
	"context"
	"fmt"

	"shareit/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender — минимальный срез клиента Telegram, нужный нотификатору.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier отправляет уведомления в Telegram-чат владельцев.
type TelegramNotifier struct {
	bot TelegramSender
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug
	return &TelegramNotifier{bot: bot}, nil
}

// NewTelegramNotifierWithSender подставляет готовый клиент (для тестов).
func NewTelegramNotifierWithSender(sender TelegramSender) *TelegramNotifier {
	return &TelegramNotifier{bot: sender}
}

func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
