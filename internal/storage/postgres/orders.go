package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/mugworks/storefront/internal/domain/errors"
	"github.com/mugworks/storefront/internal/domain/model"
	"github.com/mugworks/storefront/internal/serial"
)

const orderColumns = `id, user_id, number, status,
       shipping_full_name, shipping_phone, shipping_address_line1, shipping_city,
       shipping_state, shipping_district, shipping_postal_code, shipping_country, shipping_landmark,
       payment_method, payment_status, payment_transaction_id, payment_merchant_txn_id,
       payment_amount, payment_currency,
       total_amount, shipping_charges, final_amount, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &o.Status,
		&o.Shipping.FullName, &o.Shipping.Phone, &o.Shipping.AddressLine1, &o.Shipping.City,
		&o.Shipping.State, &o.Shipping.District, &o.Shipping.PostalCode, &o.Shipping.Country, &o.Shipping.Landmark,
		&o.Payment.Method, &o.Payment.Status, &o.Payment.TransactionID, &o.Payment.MerchantTransactionID,
		&o.Payment.Amount, &o.Payment.Currency,
		&o.TotalAmount, &o.ShippingCharges, &o.FinalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (user_id, number, status,
             shipping_full_name, shipping_phone, shipping_address_line1, shipping_city,
             shipping_state, shipping_district, shipping_postal_code, shipping_country, shipping_landmark,
             payment_method, payment_status, payment_amount, payment_currency,
             total_amount, shipping_charges, final_amount)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Number, order.Status,
			order.Shipping.FullName, order.Shipping.Phone, order.Shipping.AddressLine1, order.Shipping.City,
			order.Shipping.State, order.Shipping.District, order.Shipping.PostalCode, order.Shipping.Country, order.Shipping.Landmark,
			order.Payment.Method, order.Payment.Status, order.Payment.Amount, order.Payment.Currency,
			order.TotalAmount, order.ShippingCharges, order.FinalAmount).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertItem = `INSERT INTO order_items
            (order_id, product_id, product_name, quantity, price, total_price, reference_code, serialized, serials)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			var serials any
			if len(item.Serials) > 0 {
				encoded, err := json.Marshal(item.Serials)
				if err != nil {
					return err
				}
				serials = encoded
			}
			err := tx.QueryRow(ctx, insertItem,
				order.ID, item.ProductID, item.ProductName, item.Quantity,
				item.Price, item.TotalPrice, item.ReferenceCode, item.Serialized, serials).
				Scan(&item.ID)
			if err != nil {
				return err
			}
		}

		const insertProfile = `INSERT INTO order_profiles (order_id, profile_id, position) VALUES ($1, $2, $3)`
		for i, profileID := range order.ProfileIDs {
			if _, err := tx.Exec(ctx, insertProfile, order.ID, profileID, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, userID, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 AND user_id=$2`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachDetails(ctx, order, true); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByMerchantTransactionID(ctx context.Context, txnID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_merchant_txn_id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, txnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachDetails(ctx, order, true); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id=$1`
	listQuery := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1`
	args := []any{userID}
	if status != "" {
		countQuery += ` AND status=$2`
		listQuery += ` AND status=$2`
		args = append(args, status)
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	listQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range result {
		if err := r.attachDetails(ctx, &result[i], true); err != nil {
			return nil, 0, err
		}
	}
	return result, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetMerchantTransactionID(ctx context.Context, orderID int64, txnID string) error {
	const query = `UPDATE orders SET payment_merchant_txn_id=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, txnID, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// MarkPaymentCompleted completes the payment and confirms the order in one
// guarded update. Only pending payments match, so of two concurrent
// callers exactly one sees the transition reported back as true.
func (r *orderRepository) MarkPaymentCompleted(ctx context.Context, orderID int64, transactionID string) (bool, error) {
	const query = `UPDATE orders
                   SET payment_status=$1, payment_transaction_id=$2, status=$3, updated_at=NOW()
                   WHERE id=$4 AND payment_status=$5`
	tag, err := r.storage.pool.Exec(ctx, query,
		model.PaymentStatusCompleted, transactionID, model.OrderStatusConfirmed,
		orderID, model.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) MarkPaymentFailed(ctx context.Context, orderID int64) error {
	const query = `UPDATE orders SET payment_status=$1, updated_at=NOW()
                   WHERE id=$2 AND payment_status=$3`
	_, err := r.storage.pool.Exec(ctx, query,
		model.PaymentStatusFailed, orderID, model.PaymentStatusPending)
	return err
}

func (r *orderRepository) SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE payment_method=$1 AND payment_status=$2 AND payment_merchant_txn_id <> ''
              ORDER BY created_at
              LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentMethodPhonePe, model.PaymentStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.attachDetails(ctx, &result[i], false); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *orderRepository) CountByShippingState(ctx context.Context, state string) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE LOWER(shipping_state)=LOWER($1)`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, state).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// attachDetails loads line items and recipient profile ids onto the order.
func (r *orderRepository) attachDetails(ctx context.Context, order *model.Order, withItems bool) error {
	if withItems {
		const itemsQuery = `SELECT id, product_id, product_name, quantity, price, total_price,
                                   reference_code, serialized, serials
                            FROM order_items WHERE order_id=$1 ORDER BY id`
		rows, err := r.storage.pool.Query(ctx, itemsQuery, order.ID)
		if err != nil {
			return err
		}
		defer rows.Close()

		order.Items = order.Items[:0]
		for rows.Next() {
			var item model.OrderItem
			var stored []byte
			if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity,
				&item.Price, &item.TotalPrice, &item.ReferenceCode, &item.Serialized, &stored); err != nil {
				return err
			}
			if len(stored) > 0 {
				item.Serials = serial.DecodeStored(stored)
			}
			order.Items = append(order.Items, item)
		}
		if err := rows.Err(); err != nil {
			return err
		}
	}

	const profilesQuery = `SELECT profile_id FROM order_profiles WHERE order_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, profilesQuery, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.ProfileIDs = order.ProfileIDs[:0]
	for rows.Next() {
		var profileID int64
		if err := rows.Scan(&profileID); err != nil {
			return err
		}
		order.ProfileIDs = append(order.ProfileIDs, profileID)
	}
	return rows.Err()
}
