package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
)

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	const query = `INSERT INTO profiles (user_id, type, name, state, district, date_of_birth)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		profile.UserID, profile.Type, profile.Name, profile.State, profile.District, profile.DateOfBirth).
		Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByID(ctx context.Context, userID, id int64) (*model.Profile, error) {
	const query = `SELECT id, user_id, type, name, state, district, date_of_birth, created_at
                   FROM profiles WHERE id=$1 AND user_id=$2`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, id, userID).
		Scan(&p.ID, &p.UserID, &p.Type, &p.Name, &p.State, &p.District, &p.DateOfBirth, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) ListByUser(ctx context.Context, userID int64) ([]model.Profile, error) {
	const query = `SELECT id, user_id, type, name, state, district, date_of_birth, created_at
                   FROM profiles WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Type, &p.Name, &p.State, &p.District, &p.DateOfBirth, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	const query = `UPDATE profiles SET name=$1, state=$2, district=$3, date_of_birth=$4
                   WHERE id=$5 AND user_id=$6`
	tag, err := r.storage.pool.Exec(ctx, query,
		profile.Name, profile.State, profile.District, profile.DateOfBirth, profile.ID, profile.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM profiles WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
