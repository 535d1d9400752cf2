package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xali3n/gmgn/internal/model"
	"github.com/0xali3n/gmgn/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS swap_transactions (
	hash             TEXT PRIMARY KEY,
	address          TEXT NOT NULL,
	action           TEXT NOT NULL,
	from_token       TEXT NOT NULL,
	to_token         TEXT NOT NULL,
	from_amount      TEXT NOT NULL,
	to_amount        TEXT NOT NULL,
	contract         TEXT NOT NULL,
	timestamp_micros BIGINT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS swap_transactions_address_idx ON swap_transactions (address, timestamp_micros DESC);

CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
	run_id          UUID NOT NULL,
	rank            INT NOT NULL,
	address         TEXT NOT NULL,
	total_trades    INT NOT NULL,
	buy_trades      INT NOT NULL,
	sell_trades     INT NOT NULL,
	total_volume    DOUBLE PRECISION,
	avg_trade_size  DOUBLE PRECISION,
	estimated_pnl   DOUBLE PRECISION,
	last_trade_time TEXT NOT NULL,
	top_tokens      JSONB NOT NULL,
	taken_at        TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (run_id, rank)
);
`

// Store provides Postgres persistence for swaps and leaderboard snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

var _ storage.Storage = (*Store)(nil)

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutSwapBatch inserts or updates swaps for address, keyed by hash.
func (s *Store) PutSwapBatch(ctx context.Context, address string, swaps []model.SwapTransaction) error {
	if len(swaps) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, swap := range swaps {
		var ts *int64
		if swap.TimestampMicros != 0 {
			v := swap.TimestampMicros
			ts = &v
		}
		batch.Queue(`
			INSERT INTO swap_transactions (
				hash, address, action, from_token, to_token, from_amount, to_amount, contract, timestamp_micros, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (hash)
			DO UPDATE SET
				address = EXCLUDED.address,
				action = EXCLUDED.action,
				from_token = EXCLUDED.from_token,
				to_token = EXCLUDED.to_token,
				from_amount = EXCLUDED.from_amount,
				to_amount = EXCLUDED.to_amount,
				contract = EXCLUDED.contract,
				timestamp_micros = EXCLUDED.timestamp_micros,
				updated_at = now()
		`,
			swap.Hash,
			address,
			string(swap.Action),
			swap.FromToken,
			swap.ToToken,
			swap.FromAmount,
			swap.ToAmount,
			swap.Contract,
			ts,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range swaps {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// SaveLeaderboard stores a ranked leaderboard as a new snapshot and returns
// its run id.
func (s *Store) SaveLeaderboard(ctx context.Context, stats []model.TraderStats, takenAt time.Time) (uuid.UUID, error) {
	runID := uuid.New()
	if len(stats) == 0 {
		return runID, nil
	}

	batch := &pgx.Batch{}
	for i, entry := range stats {
		topTokens, err := json.Marshal(entry.TopTokens)
		if err != nil {
			return uuid.Nil, fmt.Errorf("marshal top tokens: %w", err)
		}
		batch.Queue(`
			INSERT INTO leaderboard_snapshots (
				run_id, rank, address, total_trades, buy_trades, sell_trades,
				total_volume, avg_trade_size, estimated_pnl, last_trade_time, top_tokens, taken_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`,
			runID,
			i+1,
			entry.Address,
			entry.TotalTrades,
			entry.BuyTrades,
			entry.SellTrades,
			nullableFloat(entry.TotalVolume),
			nullableFloat(entry.AvgTradeSize),
			nullableFloat(entry.EstimatedPnL),
			entry.LastTradeTime,
			topTokens,
			takenAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range stats {
		if _, err := br.Exec(); err != nil {
			return uuid.Nil, err
		}
	}
	return runID, nil
}

// LatestLeaderboard loads the most recent snapshot. ok is false when no
// snapshot exists.
func (s *Store) LatestLeaderboard(ctx context.Context) (uuid.UUID, []model.TraderStats, bool, error) {
	var runID uuid.UUID
	row := s.pool.QueryRow(ctx, `SELECT run_id FROM leaderboard_snapshots ORDER BY taken_at DESC LIMIT 1`)
	if err := row.Scan(&runID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil, false, nil
		}
		return uuid.Nil, nil, false, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT address, total_trades, buy_trades, sell_trades, total_volume, avg_trade_size,
			estimated_pnl, last_trade_time, top_tokens
		FROM leaderboard_snapshots
		WHERE run_id = $1
		ORDER BY rank
	`, runID)
	if err != nil {
		return uuid.Nil, nil, false, err
	}
	defer rows.Close()

	var out []model.TraderStats
	for rows.Next() {
		var (
			entry                model.TraderStats
			volume, avgSize, pnl *float64
			topTokens            []byte
		)
		if err := rows.Scan(
			&entry.Address,
			&entry.TotalTrades,
			&entry.BuyTrades,
			&entry.SellTrades,
			&volume,
			&avgSize,
			&pnl,
			&entry.LastTradeTime,
			&topTokens,
		); err != nil {
			return uuid.Nil, nil, false, err
		}
		if err := json.Unmarshal(topTokens, &entry.TopTokens); err != nil {
			return uuid.Nil, nil, false, fmt.Errorf("decode top tokens: %w", err)
		}
		entry.TotalVolume = floatOrNaN(volume)
		entry.AvgTradeSize = floatOrNaN(avgSize)
		entry.EstimatedPnL = floatOrNaN(pnl)
		if entry.TotalTrades > 0 {
			entry.WinRate = float64(entry.BuyTrades+entry.SellTrades) / float64(entry.TotalTrades) * 100
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, nil, false, err
	}
	return runID, out, true, nil
}

func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
