package telegram

import (
	"context"
	"log"

	"truthguard-bot/api/internal/session"
	"truthguard-bot/api/internal/truthguard"
	"truthguard-bot/api/internal/util"
	"truthguard-bot/api/internal/view"
)

// performCheck runs one submission to its terminal state. It is the only
// writer of session results; everything it does after the network call is
// guarded by the session ID, so a superseded call cannot touch newer state.
func (r *Router) performCheck(ctx context.Context, cid int64, tr *session.Tracker, s *session.Session, req *truthguard.AnalysisRequest) {
	var content []byte
	if req.ContentType == truthguard.ContentTypeText {
		content = []byte(req.Content)
	} else {
		content = req.Image
	}
	hash := util.SHA256Hex(content)

	if vr, ok := r.cachedVerdict(ctx, hash); ok {
		r.finish(ctx, cid, tr, s, req, hash, vr, false)
		return
	}

	var (
		vr  *truthguard.VerdictResponse
		err error
	)
	if req.ContentType == truthguard.ContentTypeText {
		vr, err = r.Client.Check(ctx, req)
	} else {
		vr, err = r.Client.CheckImage(ctx, req)
	}
	if err != nil {
		if tr.Fail(s.ID, userMessage(err), err) {
			log.Printf("chat %d: %s check failed: %v", cid, req.ContentType, err)
			r.send(cid, userMessage(err))
		} else {
			log.Printf("chat %d: stale %s failure discarded: %v", cid, req.ContentType, err)
		}
		return
	}

	r.finish(ctx, cid, tr, s, req, hash, vr, true)
}

func (r *Router) finish(ctx context.Context, cid int64, tr *session.Tracker, s *session.Session, req *truthguard.AnalysisRequest, hash string, vr *truthguard.VerdictResponse, fresh bool) {
	vm := view.Project(vr)
	if !tr.Resolve(s.ID, vm) {
		log.Printf("chat %d: stale %s response discarded", cid, req.ContentType)
		return
	}
	if fresh {
		if r.Cache != nil {
			r.Cache.Put(ctx, hash, vr)
		}
		if r.History != nil {
			if err := r.History.Insert(ctx, cid, string(req.ContentType), hash, vr); err != nil {
				log.Printf("chat %d: history insert: %v", cid, err)
			}
		}
	}
	r.send(cid, renderResult(vm))
}

// cachedVerdict checks redis first, then the history store's freshness
// window. Either layer may be disabled.
func (r *Router) cachedVerdict(ctx context.Context, hash string) (*truthguard.VerdictResponse, bool) {
	if r.Cache != nil {
		if vr, ok := r.Cache.Get(ctx, hash); ok {
			return vr, true
		}
	}
	if r.History != nil && r.HistoryMaxAge > 0 {
		if row, err := r.History.FindByHash(ctx, hash, r.HistoryMaxAge); err == nil {
			return &row.Response, true
		}
	}
	return nil, false
}
