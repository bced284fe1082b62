package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityMinter/internal/model"
)

// Store provides Postgres persistence for minted positions.
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

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPositions inserts or updates minted position records keyed by
// chain id and transaction hash.
func (s *Store) UpsertPositions(ctx context.Context, positions []model.PositionRecord) error {
	if len(positions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range positions {
		batch.Queue(`
			INSERT INTO positions (
				chain_id, network, tx_hash, block_number, token_id,
				token0, token1, fee, tick_lower, tick_upper,
				amount0_desired, amount1_desired, amount0_min, amount1_min,
				liquidity, amount0, amount1, recipient, deadline, minted_at,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,now(),now())
			ON CONFLICT (chain_id, tx_hash)
			DO UPDATE SET
				block_number = EXCLUDED.block_number,
				token_id = EXCLUDED.token_id,
				liquidity = EXCLUDED.liquidity,
				amount0 = EXCLUDED.amount0,
				amount1 = EXCLUDED.amount1,
				updated_at = now()
		`,
			int64(p.ChainID),
			p.Network,
			p.TxHash,
			int64(p.BlockNumber),
			p.TokenID,
			p.Token0,
			p.Token1,
			int64(p.Fee),
			p.TickLower,
			p.TickUpper,
			p.Amount0Desired,
			p.Amount1Desired,
			p.Amount0Min,
			p.Amount1Min,
			p.Liquidity,
			p.Amount0,
			p.Amount1,
			p.Recipient,
			int64(p.Deadline),
			p.MintedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range positions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
