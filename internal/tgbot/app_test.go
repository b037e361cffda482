package tgbot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"

	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/models"
	"sportsmeet-portal/internal/util"
)

type sent struct {
	chatID int64
	text   string
}

type fakeBot struct {
	mu   sync.Mutex
	sent []sent
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, sent{chatID: m.ChatID, text: m.Text})
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

type fakeExporter struct {
	table models.Table
	err   error
}

func (f fakeExporter) Export(context.Context) (models.Table, error) {
	return f.table, f.err
}

func newTestApp(ex Exporter) (*App, *fakeBot) {
	bot := &fakeBot{}
	cfg := config.Config{
		HTTPAddr:     ":8080",
		ExportSecret: "s3cret",
		AdminTGIDs:   map[int64]bool{100: true, 200: true},
	}
	return newApp(cfg, bot, ex, clockwork.NewRealClock()), bot
}

func message(from int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: from},
		Chat: &tgbotapi.Chat{ID: from},
		Text: text,
	}
}

func TestHandleMessage(t *testing.T) {
	table := models.Table{
		Header: []string{"timestamp", "team", "teamNumber", "name"},
		Rows: [][]string{
			{"t1", "Team 2", "2", "A"},
			{"t1", "Team 2", "2", "B"},
			{"t2", "Team 10", "10", "C"},
		},
	}
	token := util.HMACSHA256Hex("s3cret", util.ExportScopeAll)

	tests := []struct {
		name string
		from int64
		text string
		want string
	}{
		{"non admin", 5, "/summary", accessDenied},
		{"start", 100, "/start", helpText},
		{"unknown command", 100, "/foo", helpText},
		{"summary", 100, "/summary", "Team 2: 2 participants (1 submission)"},
		{"summary with botname", 200, "/summary@meet_bot", "Total: 3 participants"},
		{"export", 100, "/export", "http://localhost:8080/export/registrations.csv?token=" + token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, bot := newTestApp(fakeExporter{table: table})
			if err := app.handleMessage(context.Background(), message(tt.from, tt.text)); err != nil {
				t.Fatalf("handleMessage: %v", err)
			}
			if len(bot.sent) != 1 {
				t.Fatalf("expected one reply, got %d", len(bot.sent))
			}
			if bot.sent[0].chatID != tt.from {
				t.Errorf("reply went to %d, want %d", bot.sent[0].chatID, tt.from)
			}
			if !strings.Contains(bot.sent[0].text, tt.want) {
				t.Errorf("reply %q does not contain %q", bot.sent[0].text, tt.want)
			}
		})
	}
}

func TestHandleMessageIgnoresPlainText(t *testing.T) {
	app, bot := newTestApp(fakeExporter{})
	if err := app.handleMessage(context.Background(), message(100, "hello")); err != nil {
		t.Fatal(err)
	}
	if len(bot.sent) != 0 {
		t.Errorf("expected no reply, got %v", bot.sent)
	}
}

func TestSummaryStoreFailure(t *testing.T) {
	app, bot := newTestApp(fakeExporter{err: errors.New("boom")})
	if err := app.handleMessage(context.Background(), message(100, "/summary")); err != nil {
		t.Fatal(err)
	}
	if len(bot.sent) != 1 || bot.sent[0].text != "Could not load registrations." {
		t.Errorf("unexpected replies %v", bot.sent)
	}
}

func TestHandleCallback(t *testing.T) {
	app, bot := newTestApp(fakeExporter{})
	q := &tgbotapi.CallbackQuery{ID: "q1", From: &tgbotapi.User{ID: 5}, Data: "a:export"}
	if err := app.handleCallback(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if len(bot.sent) != 1 || bot.sent[0].text != accessDenied {
		t.Errorf("unexpected replies %v", bot.sent)
	}
}

func TestNotifySubmitted(t *testing.T) {
	app, bot := newTestApp(fakeExporter{})
	sub := models.Submission{
		ID: "sub-1", Team: "Team 3", TeamNumber: 3, Manager: "manager_team3",
		Timestamp: "2025-01-01T00:00:00.000Z",
		Participants: []models.Entry{
			{Category: "Open"}, {Category: "Veteran"}, {Category: "Open"},
		},
	}
	app.NotifySubmitted(context.Background(), sub)

	if len(bot.sent) != 2 {
		t.Fatalf("expected two notifications, got %d", len(bot.sent))
	}
	if bot.sent[0].chatID != 100 || bot.sent[1].chatID != 200 {
		t.Errorf("unexpected recipients %v", bot.sent)
	}
	want := "✅ Team 3 submitted 3 participants.\n" +
		"Manager: manager_team3\nTime: 2025-01-01T00:00:00.000Z\n" +
		"Open: 2, Veteran: 1, Senior Veteran: 0"
	if bot.sent[0].text != want {
		t.Errorf("notification = %q, want %q", bot.sent[0].text, want)
	}
}

func TestNotifySubmittedStopsOnCancel(t *testing.T) {
	app, bot := newTestApp(fakeExporter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.NotifySubmitted(ctx, models.Submission{Team: "Team 1"})

	// the first admin is sent to before any wait
	if len(bot.sent) != 1 {
		t.Errorf("expected one notification before cancellation, got %d", len(bot.sent))
	}
}

func TestSummaryText(t *testing.T) {
	if got := summaryText(models.Table{}); got != "No registrations yet." {
		t.Errorf("empty summary = %q", got)
	}

	tb := models.Table{
		Header: []string{"timestamp", "team", "teamNumber"},
		Rows: [][]string{
			{"t3", "Team 10", "10"},
			{"t1", "Team 2", "2"},
			{"t2", "Team 2", "2"},
		},
	}
	want := "📋 Registrations\n" +
		"Team 2: 2 participants (2 submissions)\n" +
		"Team 10: 1 participants (1 submission)\n" +
		"Total: 3 participants"
	if got := summaryText(tb); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}
