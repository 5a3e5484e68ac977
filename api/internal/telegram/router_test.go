package telegram

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"truthguard-bot/api/internal/truthguard"
)

// replyLog captures every message text the bot sends.
type replyLog struct {
	mu    sync.Mutex
	texts []string
}

func (l *replyLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.texts...)
}

// newTestBot points a BotAPI at a local Telegram stub so sends stay in-process.
func newTestBot(t *testing.T) (*tgbotapi.BotAPI, *replyLog) {
	t.Helper()
	log := &replyLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if txt := r.Form.Get("text"); txt != "" {
			log.mu.Lock()
			log.texts = append(log.texts, txt)
			log.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true,"result":{"message_id":1}}`)
	}))
	t.Cleanup(srv.Close)

	bot := &tgbotapi.BotAPI{Token: "test-token", Client: srv.Client()}
	bot.SetAPIEndpoint(srv.URL + "/bot%s/%s")
	return bot, log
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i > 0 {
		cmdLen = i
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func bareUpdate(chatID int64) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}}}
}

func TestLanguageCommand(t *testing.T) {
	bot, log := newTestBot(t)
	r := &Router{Bot: bot}
	cid := int64(9301)

	r.HandleUpdate(commandUpdate(cid, "/language hi"))
	replies := log.all()
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "✅ Language: Hindi")
	require.Equal(t, truthguard.LangHindi, r.lang(cid))
}

func TestLanguageCommandWithBotMention(t *testing.T) {
	bot, log := newTestBot(t)
	r := &Router{Bot: bot}
	cid := int64(9302)

	// group chats address commands as /language@BotName <code>
	r.HandleUpdate(commandUpdate(cid, "/language@TruthGuardBot te"))
	replies := log.all()
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "✅ Language: Telugu")
	require.Equal(t, truthguard.LangTelugu, r.lang(cid))
}

func TestLanguageCommandUnknownCode(t *testing.T) {
	bot, log := newTestBot(t)
	r := &Router{Bot: bot}
	cid := int64(9303)

	r.HandleUpdate(commandUpdate(cid, "/language klingon"))
	replies := log.all()
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "Unknown language")
}

func TestNoticePrependedOnNextReply(t *testing.T) {
	bot, log := newTestBot(t)
	r := &Router{Bot: bot}
	cid := int64(9304)

	board(cid).push("ℹ️ Only the first image of the album is analyzed.")

	r.HandleUpdate(commandUpdate(cid, "/education"))
	replies := log.all()
	require.Len(t, replies, 1)
	require.True(t, strings.HasPrefix(replies[0], "ℹ️ Only the first image"))

	// drained: the next reply carries no notice
	r.HandleUpdate(commandUpdate(cid, "/education"))
	replies = log.all()
	require.Len(t, replies, 2)
	require.NotContains(t, replies[1], "Only the first image")
}

func TestNoticeExpiresAfterOneUpdate(t *testing.T) {
	bot, log := newTestBot(t)
	r := &Router{Bot: bot}
	cid := int64(9305)

	board(cid).push("ℹ️ Only the first image of the album is analyzed.")

	// two updates pass without a reply; the notice outlives the first
	// tick only
	r.HandleUpdate(bareUpdate(cid))
	r.HandleUpdate(bareUpdate(cid))

	r.HandleUpdate(commandUpdate(cid, "/education"))
	replies := log.all()
	require.Len(t, replies, 1)
	require.NotContains(t, replies[0], "Only the first image")
}
