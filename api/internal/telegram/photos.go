package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"truthguard-bot/api/internal/session"
	"truthguard-bot/api/internal/truthguard"
	"truthguard-bot/api/internal/util"
)

// acceptPhoto handles a photo message. One image per request is a deliberate
// policy: within an album (media group) only the first photo is analyzed, and
// the user is told so rather than silently dropping the rest.
func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID

	if msg.MediaGroupID != "" && !firstOfAlbum(msg.MediaGroupID, time.Now()) {
		board(cid).push("ℹ️ Only the first image of the album is analyzed.")
		return
	}

	// largest preview
	ph := msg.Photo[len(msg.Photo)-1]
	data, err := r.downloadFile(ph.FileID)
	if err != nil {
		r.send(cid, "⚠️ Could not download the photo. Please try again.")
		return
	}
	r.runImageCheck(cid, truthguard.ImageFile{
		Name: "photo.jpg",
		MIME: util.SniffMimeHTTP(data),
		Data: data,
	})
}

// acceptDocument handles a file attachment; the request builder rejects
// anything that is not image/*.
func (r *Router) acceptDocument(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	doc := msg.Document
	data, err := r.downloadFile(doc.FileID)
	if err != nil {
		r.send(cid, "⚠️ Could not download the file. Please try again.")
		return
	}
	r.runImageCheck(cid, truthguard.ImageFile{
		Name: doc.FileName,
		MIME: doc.MimeType,
		Data: data,
	})
}

func (r *Router) runImageCheck(cid int64, file truthguard.ImageFile) {
	req, err := truthguard.NewImageRequest(file)
	if err != nil {
		r.send(cid, userMessage(err))
		return
	}
	tr := tracker(cid)
	s, err := tr.Begin(session.ModalityImage)
	if err != nil {
		r.send(cid, "⏳ Analysis already in progress. Please wait for the result.")
		return
	}
	r.send(cid, "🔍 Checking the image…")
	go r.performCheck(context.Background(), cid, tr, s, req)
}

func (r *Router) downloadFile(fileID string) ([]byte, error) {
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	return download(url)
}

func download(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
