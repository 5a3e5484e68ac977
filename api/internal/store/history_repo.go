package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"truthguard-bot/api/internal/truthguard"
)

var ErrNotFound = sql.ErrNoRows

// HistoryRepo keeps finished analyses in Postgres. It doubles as a result
// cache keyed by content hash, so identical content is not resubmitted to the
// inference service.
//
// Expected table:
//
//	create table if not exists analysis_history (
//	  id            bigserial primary key,
//	  created_at    timestamptz not null default now(),
//	  chat_id       bigint not null,
//	  modality      text not null,
//	  content_hash  text not null,
//	  trust_score   double precision not null,
//	  verdict       text not null,
//	  result_json   jsonb not null
//	);
//	create index if not exists analysis_history_hash_idx on analysis_history (content_hash, created_at desc);
//	create index if not exists analysis_history_chat_idx on analysis_history (chat_id, created_at desc);
type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

type HistoryRow struct {
	ID          int64
	CreatedAt   time.Time
	ChatID      int64
	Modality    string
	ContentHash string
	TrustScore  float64
	Verdict     string
	Response    truthguard.VerdictResponse
}

// FindByHash fetches the freshest stored verdict for a content hash.
// If maxAge > 0, rows older than that count as not found.
func (r *HistoryRepo) FindByHash(ctx context.Context, contentHash string, maxAge time.Duration) (*HistoryRow, error) {
	const q = `
select id, created_at, chat_id, modality, content_hash, trust_score, verdict, result_json
from analysis_history
where content_hash = $1
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, contentHash)

	var (
		h  HistoryRow
		js []byte
	)
	if err := row.Scan(&h.ID, &h.CreatedAt, &h.ChatID, &h.Modality, &h.ContentHash,
		&h.TrustScore, &h.Verdict, &js); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(h.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	if err := json.Unmarshal(js, &h.Response); err != nil {
		// broken stored JSON counts as a miss
		return nil, ErrNotFound
	}
	return &h, nil
}

// Insert records one finished analysis.
func (r *HistoryRepo) Insert(ctx context.Context, chatID int64, modality, contentHash string, vr *truthguard.VerdictResponse) error {
	js, _ := json.Marshal(vr)
	const q = `
insert into analysis_history (chat_id, modality, content_hash, trust_score, verdict, result_json)
values ($1,$2,$3,$4,$5,$6)`
	_, err := r.DB.ExecContext(ctx, q, chatID, modality, contentHash, vr.OverallTrustScore, vr.OverallVerdict, js)
	return err
}

// Recent lists a chat's latest analyses, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, chatID int64, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
select id, created_at, chat_id, modality, content_hash, trust_score, verdict, result_json
from analysis_history
where chat_id = $1
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var (
			h  HistoryRow
			js []byte
		)
		if err := rows.Scan(&h.ID, &h.CreatedAt, &h.ChatID, &h.Modality, &h.ContentHash,
			&h.TrustScore, &h.Verdict, &js); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &h.Response); err == nil {
			out = append(out, h)
		}
	}
	return out, rows.Err()
}
