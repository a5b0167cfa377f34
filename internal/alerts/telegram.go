package alerts

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
)

// TelegramNotifier pushes failed-turn reports to the admin chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(cfg config.Config) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Alerts.BotToken)
	if err != nil {
		return nil, fmt.Errorf("init alert bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.Alerts.AdminChatID,
	}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, err error, details string) error {
	text := fmt.Sprintf("❗ Turn failed\n\nError: %v\n\nDetails: %s", err, details)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, sendErr := n.bot.Send(msg); sendErr != nil {
		log.Printf("[alerts] send fail: %v", sendErr)
		return sendErr
	}
	return nil
}
