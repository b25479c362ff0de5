package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel delivers the plain-text alert digest through a bot chat.
type TelegramChannel struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	maxRetries int
	retryDelay time.Duration
}

// NewTelegramChannel creates a Telegram channel. The chat ID is the numeric
// target chat as a string, matching how bot configs are usually stored.
func NewTelegramChannel(botToken, chatID string) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat ID: %w", err)
	}

	return &TelegramChannel{
		bot:        bot,
		chatID:     chatIDInt,
		maxRetries: 3,
		retryDelay: time.Second,
	}, nil
}

// Name implements Channel.
func (c *TelegramChannel) Name() string { return "telegram" }

// Send implements Channel. Telegram gets the subject plus the text body; the
// HTML body is email-only. Transient API hiccups are retried a few times
// before the send is reported as failed.
func (c *TelegramChannel) Send(ctx context.Context, msg Message) error {
	text := msg.Subject + "\n\n" + msg.TextBody
	m := tgbotapi.NewMessage(c.chatID, text)

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.bot.Send(m); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelay * time.Duration(i+1))
	}
	return fmt.Errorf("telegram send failed after %d attempts: %w", c.maxRetries, lastErr)
}
