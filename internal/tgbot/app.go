package tgbot

import (
	"context"
	"slices"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/models"
	"sportsmeet-portal/internal/util"
)

const (
	accessDenied = "Access denied."
	sendInterval = 35 * time.Millisecond
)

// Exporter reads every stored registration.
type Exporter interface {
	Export(ctx context.Context) (models.Table, error)
}

// botAPI is the subset of *tgbotapi.BotAPI the app uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// App is the organisers' Telegram channel: submission alerts and admin commands.
type App struct {
	cfg   config.Config
	bot   botAPI
	store Exporter
	clock clockwork.Clock
}

func New(cfg config.Config, store Exporter, clock clockwork.Clock) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return newApp(cfg, b, store, clock), nil
}

func newApp(cfg config.Config, bot botAPI, store Exporter, clock clockwork.Clock) *App {
	return &App{cfg: cfg, bot: bot, store: store, clock: clock}
}

func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(ctx, upd.Message); err != nil {
					log.Error().Err(err).Int("update_id", upd.UpdateID).Msg("handle message")
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					log.Error().Err(err).Int("update_id", upd.UpdateID).Msg("handle callback")
				}
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) isAdmin(tgID int64) bool {
	return a.cfg.AdminTGIDs[tgID]
}

// adminIDs returns the configured admin chats in a stable order.
func (a *App) adminIDs() []int64 {
	ids := make([]int64, 0, len(a.cfg.AdminTGIDs))
	for id, ok := range a.cfg.AdminTGIDs {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// NotifySubmitted tells every admin chat about an accepted roster.
func (a *App) NotifySubmitted(ctx context.Context, sub models.Submission) {
	text := submissionText(sub)
	for i, id := range a.adminIDs() {
		if i > 0 && !util.Sleep(a.clock, sendInterval, ctx.Done()) {
			return
		}
		if err := a.SendText(id, text); err != nil {
			log.Warn().Err(err).Int64("tg_id", id).Str("submission_id", sub.ID).Msg("notify admin")
		}
	}
}

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	if m.From == nil {
		return nil
	}
	tgID := m.From.ID
	chatID := tgID
	if m.Chat != nil {
		chatID = m.Chat.ID
	}
	txt := strings.TrimSpace(m.Text)

	if !strings.HasPrefix(txt, "/") {
		return nil
	}
	if !a.isAdmin(tgID) {
		return a.SendText(chatID, accessDenied)
	}

	switch command(txt) {
	case "/start", "/admin":
		return a.showAdminMenu(chatID)
	case "/summary":
		return a.sendSummary(ctx, chatID)
	case "/export":
		return a.sendExportLink(chatID)
	default:
		return a.SendText(chatID, helpText)
	}
}

// command strips arguments and a trailing @botname.
func command(txt string) string {
	cmd, _, _ := strings.Cut(txt, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd)
}

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q.From == nil {
		return nil
	}
	tgID := q.From.ID

	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(cb)

	if !a.isAdmin(tgID) {
		return a.SendText(tgID, accessDenied)
	}
	switch q.Data {
	case "a:summary":
		return a.sendSummary(ctx, tgID)
	case "a:export":
		return a.sendExportLink(tgID)
	}
	return nil
}

func (a *App) showAdminMenu(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Summary", "a:summary"),
			tgbotapi.NewInlineKeyboardButtonData("📤 CSV", "a:export"),
		),
	)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) sendSummary(ctx context.Context, chatID int64) error {
	tb, err := a.store.Export(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load registrations for summary")
		return a.SendText(chatID, "Could not load registrations.")
	}
	return a.SendText(chatID, summaryText(tb))
}

func (a *App) sendExportLink(chatID int64) error {
	url := util.ExportURL(a.cfg.BasePublicURL, a.cfg.HTTPAddr, a.cfg.ExportSecret)
	return a.SendText(chatID, "📤 CSV export (link): "+url)
}
