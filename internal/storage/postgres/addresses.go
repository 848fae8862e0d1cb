package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
)

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses
                   (user_id, full_name, phone, address_line1, city, state, district, postal_code, country, landmark)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		address.UserID, address.FullName, address.Phone, address.AddressLine1,
		address.City, address.State, address.District, address.PostalCode,
		address.Country, address.Landmark).
		Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) GetByID(ctx context.Context, userID, id int64) (*model.Address, error) {
	const query = `SELECT id, user_id, full_name, phone, address_line1, city, state, district,
                          postal_code, country, landmark, created_at
                   FROM addresses WHERE id=$1 AND user_id=$2`
	var a model.Address
	err := r.storage.pool.QueryRow(ctx, query, id, userID).
		Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine1, &a.City,
			&a.State, &a.District, &a.PostalCode, &a.Country, &a.Landmark, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	const query = `SELECT id, user_id, full_name, phone, address_line1, city, state, district,
                          postal_code, country, landmark, created_at
                   FROM addresses WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine1, &a.City,
			&a.State, &a.District, &a.PostalCode, &a.Country, &a.Landmark, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	const query = `UPDATE addresses SET full_name=$1, phone=$2, address_line1=$3, city=$4,
                          state=$5, district=$6, postal_code=$7, country=$8, landmark=$9
                   WHERE id=$10 AND user_id=$11`
	tag, err := r.storage.pool.Exec(ctx, query,
		address.FullName, address.Phone, address.AddressLine1, address.City,
		address.State, address.District, address.PostalCode, address.Country,
		address.Landmark, address.ID, address.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM addresses WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
