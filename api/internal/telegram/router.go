package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"truthguard-bot/api/internal/cache"
	"truthguard-bot/api/internal/session"
	"truthguard-bot/api/internal/store"
	"truthguard-bot/api/internal/truthguard"
)

type Router struct {
	Bot    *tgbotapi.BotAPI
	Client *truthguard.Client

	// Optional: nil disables history / caching.
	History *store.HistoryRepo
	Cache   *cache.VerdictCache

	DefaultLanguage truthguard.Language
	// How long a stored verdict still counts as fresh for the history cache.
	HistoryMaxAge time.Duration
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID
	board(cid).advance()

	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}

	// photo or image document → image path
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if upd.Message.Document != nil {
		r.acceptDocument(*upd.Message)
		return
	}

	// plain text → text path
	if txt := upd.Message.Text; txt != "" {
		r.runTextCheck(cid, txt)
	}
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, "Send me a message or a photo and I will check it for misinformation.\n"+
			"Commands:\n"+
			"/language [code] — set analysis language\n"+
			"/education — toggle educational insights\n"+
			"/last — latest result per modality\n"+
			"/history — your recent checks\n"+
			"/stats — service statistics\n"+
			"/health — service health")
	case "language":
		// CommandArguments strips the command and any @botname mention
		r.handleLanguageCommand(cid, upd.Message.CommandArguments())
	case "education":
		if toggleEdu(cid) {
			r.send(cid, "✅ Educational insights: on")
		} else {
			r.send(cid, "Educational insights: off")
		}
	case "stats":
		r.handleStats(cid)
	case "health":
		r.handleHealth(cid)
	case "last":
		r.handleLast(cid)
	case "history":
		r.handleHistory(cid)
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) handleLanguageCommand(cid int64, arg string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		cur := r.lang(cid)
		var b strings.Builder
		fmt.Fprintf(&b, "Current language: %s (%s)\nUsage: /language <code>\nSupported:\n", cur.DisplayName(), cur)
		for _, l := range truthguard.SupportedLanguages() {
			fmt.Fprintf(&b, "  %s — %s\n", l, l.DisplayName())
		}
		r.send(cid, b.String())
		return
	}
	l, err := truthguard.ParseLanguage(arg)
	if err != nil {
		r.send(cid, "Unknown language. Supported: en | hi | te | bn | ta | hinglish")
		return
	}
	setLang(cid, l)
	r.send(cid, "✅ Language: "+l.DisplayName())
}

func (r *Router) handleStats(cid int64) {
	st, err := r.Client.Stats(context.Background())
	if err != nil {
		r.send(cid, userMessage(err))
		return
	}
	r.send(cid, fmt.Sprintf("📊 TruthGuard stats\nFact patterns: %d\nSupported languages: %d\nEducational techniques: %d\nTrusted sources: %d\nFact-check resources: %d",
		st.TotalFactPatterns, st.SupportedLanguages, st.EducationalTechniques, st.TrustedSources, st.FactCheckResources))
}

func (r *Router) handleHealth(cid int64) {
	h, err := r.Client.Health(context.Background())
	if err != nil {
		r.send(cid, userMessage(err))
		return
	}
	r.send(cid, fmt.Sprintf("✅ Service: %s (database: %s, %d fact entries)", h.Status, h.DatabaseStatus, h.FactDatabaseEntries))
}

// handleLast replays the latest terminal session of each modality. A check in
// one modality never clears the other's result.
func (r *Router) handleLast(cid int64) {
	tr := tracker(cid)
	sent := false
	for _, m := range []session.Modality{session.ModalityText, session.ModalityImage} {
		s := tr.Last(m)
		if s == nil {
			continue
		}
		sent = true
		switch s.State {
		case session.Result:
			r.send(cid, fmt.Sprintf("Last %s check (%s):\n%s", m, s.StartedAt.Format("02 Jan 15:04"), renderResult(*s.Result)))
		case session.Error:
			r.send(cid, fmt.Sprintf("Last %s check failed: %s", m, s.ErrMessage))
		}
	}
	if !sent {
		r.send(cid, "Nothing analyzed yet. Send me some text or a photo.")
	}
}

func (r *Router) handleHistory(cid int64) {
	if r.History == nil {
		r.send(cid, "History is disabled on this deployment.")
		return
	}
	rows, err := r.History.Recent(context.Background(), cid, 10)
	if err != nil {
		r.send(cid, "⚠️ Could not load history.")
		return
	}
	if len(rows) == 0 {
		r.send(cid, "No checks yet. Send me something to analyze.")
		return
	}
	var b strings.Builder
	b.WriteString("🗂 Recent checks:\n")
	for _, h := range rows {
		fmt.Fprintf(&b, "%s  %s  %.0f%%  %s\n",
			h.CreatedAt.Format("02 Jan 15:04"), h.Modality, h.TrustScore, h.Verdict)
	}
	r.send(cid, b.String())
}

/// runTextCheck is the text submission path: build → session Begin → async
// submit. Validation failures never open a session and never hit the network.
func (r *Router) runTextCheck(cid int64, text string) {
	req, err := truthguard.NewTextRequest(text, r.lang(cid), eduEnabled(cid))
	if err != nil {
		r.send(cid, userMessage(err))
		return
	}
	tr := tracker(cid)
	s, err := tr.Begin(session.ModalityText)
	if err != nil {
		r.send(cid, "⏳ Analysis already in progress. Please wait for the result.")
		return
	}
	r.send(cid, "🔍 Checking the text…")
	go r.performCheck(context.Background(), cid, tr, s, req)
}

func (r *Router) send(chatID int64, text string) {
	for _, n := range board(chatID).drain() {
		text = n.Text + "\n" + text
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
