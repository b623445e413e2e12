package readstore

import (
	"context"

	"turfbook/internal/infra"
	"turfbook/internal/pkg/pgconv"
	"turfbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TurfReadStore struct {
	db *pgxpool.Pool
}

func NewTurfReadStore(db *pgxpool.Pool) *TurfReadStore {
	return &TurfReadStore{db: db}
}

func (r *TurfReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TurfView, error) {
	const query = `
		SELECT id, venue_id, name, sport, hourly_price_cents, is_active
		FROM turfs
		WHERE id = $1`

	var view queries.TurfView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.VenueID, &view.Name, &view.Sport,
		&view.HourlyPriceCents, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("turf not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find turf by ID", err)
	}

	return &view, nil
}
