package telegram

import (
	"sync"
	"time"

	"truthguard-bot/api/internal/notify"
	"truthguard-bot/api/internal/session"
	"truthguard-bot/api/internal/truthguard"
)

var (
	chatLang     sync.Map // chatID -> truthguard.Language
	chatNoEdu    sync.Map // chatID -> bool (education insights switched off)
	chatTrackers sync.Map // chatID -> *session.Tracker
	chatNotices  sync.Map // chatID -> *noticeBoard
	seenGroups   sync.Map // mediaGroupID -> time.Time of the first photo
)

// Telegram delivers an album's photos within seconds of each other; anything
// older than this can be forgotten.
const albumWindow = 2 * time.Minute

// firstOfAlbum reports whether this media group has not been seen within the
// album window. Expired entries are swept on every call so the map stays
// bounded.
func firstOfAlbum(groupID string, now time.Time) bool {
	seenGroups.Range(func(k, v any) bool {
		if now.Sub(v.(time.Time)) > albumWindow {
			seenGroups.Delete(k)
		}
		return true
	})
	_, loaded := seenGroups.LoadOrStore(groupID, now)
	return !loaded
}

func setLang(chatID int64, l truthguard.Language) { chatLang.Store(chatID, l) }

func (r *Router) lang(chatID int64) truthguard.Language {
	if v, ok := chatLang.Load(chatID); ok {
		return v.(truthguard.Language)
	}
	if r.DefaultLanguage != "" {
		return r.DefaultLanguage
	}
	return truthguard.LangEnglish
}

func eduEnabled(chatID int64) bool {
	v, ok := chatNoEdu.Load(chatID)
	return !ok || !v.(bool)
}

func toggleEdu(chatID int64) bool {
	on := !eduEnabled(chatID)
	chatNoEdu.Store(chatID, !on)
	return on
}

func tracker(chatID int64) *session.Tracker {
	if v, ok := chatTrackers.Load(chatID); ok {
		return v.(*session.Tracker)
	}
	v, _ := chatTrackers.LoadOrStore(chatID, session.NewTracker())
	return v.(*session.Tracker)
}

// noticeBoard carries one chat's transient notices on a logical clock: every
// handled update is one tick, so a notice pushed with ttl=1 survives into the
// next reply and then expires without any wall-clock timer.
type noticeBoard struct {
	mu   sync.Mutex
	tick notify.Tick
	q    notify.Queue
}

func board(chatID int64) *noticeBoard {
	if v, ok := chatNotices.Load(chatID); ok {
		return v.(*noticeBoard)
	}
	v, _ := chatNotices.LoadOrStore(chatID, &noticeBoard{})
	return v.(*noticeBoard)
}

func (b *noticeBoard) push(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.q.Push(text, b.tick, 1)
}

func (b *noticeBoard) advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick++
	b.q.Expire(b.tick)
}

func (b *noticeBoard) drain() []notify.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Drain(b.tick)
}
