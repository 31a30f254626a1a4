package repository

import (
	"context"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

// ReferenceRepository serves the read-only lookup lists.
type ReferenceRepository struct {
	db DBTX
}

func NewReferenceRepository(db DBTX) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListMuscles(ctx context.Context) ([]models.Muscle, error) {
	query := `SELECT id, name, sort_order FROM muscles ORDER BY sort_order ASC, id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	muscles := []models.Muscle{}
	for rows.Next() {
		var m models.Muscle
		if err := rows.Scan(&m.ID, &m.Name, &m.SortOrder); err != nil {
			return nil, err
		}
		muscles = append(muscles, m)
	}
	return muscles, rows.Err()
}

func (r *ReferenceRepository) ListContraindications(ctx context.Context) ([]models.Contraindication, error) {
	query := `SELECT id, name, sort_order FROM contraindications ORDER BY sort_order ASC, id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contraindications := []models.Contraindication{}
	for rows.Next() {
		var c models.Contraindication
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		contraindications = append(contraindications, c)
	}
	return contraindications, rows.Err()
}
