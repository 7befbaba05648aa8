package telegram

import (
	"context"

	"intraday-levels/config"
	"intraday-levels/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier sends directive alerts to a single configured chat, throttled by
// a global rate limiter so bursts of symbols cannot trip the bot API.
type Notifier struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           *telebot.Bot
	globalLimiter *rate.Limiter
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	maxPerSecond := cfg.MaxGlobalRequestPerSecond
	if maxPerSecond <= 0 {
		maxPerSecond = 30
	}

	return &Notifier{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(maxPerSecond), maxPerSecond),
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.cfg.Enabled && n.bot != nil
}

// Send delivers a markdown message to the configured chat.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	if err := n.globalLimiter.Wait(ctx); err != nil {
		return err
	}

	chat := &telebot.Chat{ID: n.cfg.ChatID}
	_, err := n.bot.Send(chat, text, telebot.ModeMarkdown)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram alert", logger.ErrorField(err))
	}
	return err
}
