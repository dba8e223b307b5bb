package archive

import (
	"context"
	"database/sql"

	"github.com/pronosport/tips-platform/pkg/contracts/events"
)

// Postgres arquiva apostas liquidadas para reporting. O arquivo é best-effort
// e write-behind: o ledger de verdade continua no key-value store.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// EnsureSchema cria a tabela do arquivo se ainda não existir.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settled_bets (
			bet_id     TEXT PRIMARY KEY,
			user_email TEXT NOT NULL,
			home_team  TEXT NOT NULL,
			away_team  TEXT NOT NULL,
			market     TEXT NOT NULL,
			selection  TEXT NOT NULL,
			odds       DOUBLE PRECISION NOT NULL,
			stake      DOUBLE PRECISION NOT NULL,
			result     TEXT NOT NULL,
			profit     DOUBLE PRECISION NOT NULL,
			settled_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// RecordSettled insere uma liquidação. Idempotente por bet_id: reentregas do
// consumer não duplicam linhas.
func (p *Postgres) RecordSettled(ctx context.Context, e events.BetSettled) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO settled_bets (bet_id, user_email, home_team, away_team, market, selection, odds, stake, result, profit, settled_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (bet_id) DO NOTHING`,
		e.BetID, e.UserEmail, e.HomeTeam, e.AwayTeam, e.Market, e.Selection,
		e.Odds, e.Stake, e.Result, e.Profit, e.SettledAt,
	)
	return err
}

// RecentSettled lista as últimas liquidações arquivadas (painel admin).
func (p *Postgres) RecentSettled(ctx context.Context, limit int) ([]events.BetSettled, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT bet_id, user_email, home_team, away_team, market, selection, odds, stake, result, profit, settled_at
		FROM settled_bets ORDER BY settled_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.BetSettled
	for rows.Next() {
		var e events.BetSettled
		if err := rows.Scan(&e.BetID, &e.UserEmail, &e.HomeTeam, &e.AwayTeam, &e.Market, &e.Selection,
			&e.Odds, &e.Stake, &e.Result, &e.Profit, &e.SettledAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
