package notifier

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// TelegramNotifier posts new submissions to the owner's Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithClient(token, chatID, tgbotapi.APIEndpoint, &http.Client{Timeout: 10 * time.Second})
}

// NewTelegramNotifierWithClient talks to a custom Bot API endpoint, a format
// string taking the token and the method name.
func NewTelegramNotifierWithClient(token string, chatID int64, endpoint string, client tgbotapi.HTTPClient) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// send gives up early when ctx is already done; the Bot API client takes no
// context, so the http.Client timeout bounds a send in flight.
func (t *TelegramNotifier) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramNotifier) NotifyMessage(ctx context.Context, m domain.Message) error {
	text := fmt.Sprintf(
		"✉️ <b>New message</b>\n"+
			"👤 %s &lt;%s&gt;\n"+
			"📞 %s\n"+
			"📝 <b>%s</b>\n%s",
		esc(m.FullName), esc(m.Email), orNA(m.Phone), orNA(m.Subject), esc(m.Message),
	)
	return t.send(ctx, text)
}

func (t *TelegramNotifier) NotifyAppointment(ctx context.Context, a domain.Appointment) error {
	text := fmt.Sprintf(
		"📅 <b>New appointment request</b>\n"+
			"🛠 %s\n"+
			"🕒 %s at %s\n"+
			"👤 %s &lt;%s&gt;",
		esc(a.Service), esc(a.Date), esc(a.Time), esc(a.Name), esc(a.Email),
	)
	return t.send(ctx, text)
}

func esc(s string) string { return html.EscapeString(s) }

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return esc(s)
}

var _ ports.Notifier = (*TelegramNotifier)(nil)
