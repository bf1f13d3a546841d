package infra_postgres_health

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Prober struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Prober {
	return &Prober{db: db}
}

func (p *Prober) Probe(ctx context.Context) error {
	var one int
	if err := p.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("database probe failed: %w", err)
	}
	return nil
}
