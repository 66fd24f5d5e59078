// Package notify provides an optional end-of-run notification, cut down
// from the reference bot's full command-handling surface (/status, /pnl,
// /stats and friends, all trading-signal monitoring) to a single
// run-summary push.
package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RunSummary is the handful of counters a finalize() hook has on hand.
type RunSummary struct {
	Tuples      int
	Accepted    int
	ByFamily    map[string]int
}

// TelegramNotifier posts a RunSummary to a single chat at the end of a run.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes a bot with token and targets chatID.
func NewTelegramNotifier(token, chatID string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: authorize bot: %w", err)
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("notify: parse chat id %q: %w", chatID, err)
	}
	return &TelegramNotifier{bot: bot, chatID: id}, nil
}

// Notify posts a one-line run summary.
func (n *TelegramNotifier) Notify(s RunSummary) error {
	text := fmt.Sprintf("patterncore run: %d tuples, %d patterns accepted", s.Tuples, s.Accepted)
	for family, count := range s.ByFamily {
		text += fmt.Sprintf(" | %s: %d", family, count)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "HTML"
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("notify: send run summary: %w", err)
	}
	return nil
}
