package postgres

import (
	"context"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/serial"
)

// StoredSerials pulls every persisted serials value mentioning the series
// code and normalizes it into individual tokens. The candidate filter is
// a plain substring match over the JSONB text; precise series matching
// happens during sequence extraction. Reserved blocks whose orders have
// not committed yet (or never will) are unioned in from the reservation
// ledger, so a rescan after a conflict always observes the competing
// claim instead of recomputing the same start.
func (r *serialRepository) StoredSerials(ctx context.Context, seriesCode string) ([]string, error) {
	const query = `SELECT serials FROM order_items
                   WHERE serials IS NOT NULL AND serials::text LIKE '%' || $1 || '%'
                   UNION ALL
                   SELECT to_jsonb(series_code || ' ' || lpad(seq::text, 7, '0'))
                   FROM issued_serials WHERE series_code = $1`
	rows, err := r.storage.pool.Query(ctx, query, seriesCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var stored []byte
		if err := rows.Scan(&stored); err != nil {
			return nil, err
		}
		result = append(result, serial.DecodeStored(stored)...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReserveBlock claims sequence numbers [start, start+count) for the
// series. The primary key on (series_code, seq) turns a concurrent claim
// into a unique violation.
func (r *serialRepository) ReserveBlock(ctx context.Context, seriesCode string, start int64, count int) error {
	const query = `INSERT INTO issued_serials (series_code, seq)
                   SELECT $1, g FROM generate_series($2::bigint, $3::bigint) AS g`
	_, err := r.storage.pool.Exec(ctx, query, seriesCode, start, start+int64(count)-1)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrSerialConflict
		}
		return err
	}
	return nil
}

// NextCounterBlock advances the per-series counter by count in a single
// upsert and returns the first sequence of the claimed block. A fresh
// counter row is seeded from the reservation ledger so a deployment
// switching strategies continues the series instead of restarting at 1.
func (r *serialRepository) NextCounterBlock(ctx context.Context, seriesCode string, count int) (int64, error) {
	const query = `INSERT INTO serial_counters (series_code, next_seq)
                   VALUES ($1, (SELECT COALESCE(MAX(seq), 0) FROM issued_serials WHERE series_code = $1) + $2)
                   ON CONFLICT (series_code) DO UPDATE
                   SET next_seq = serial_counters.next_seq + $2
                   RETURNING next_seq`
	var last int64
	if err := r.storage.pool.QueryRow(ctx, query, seriesCode, count).Scan(&last); err != nil {
		return 0, err
	}
	return last - int64(count) + 1, nil
}
