package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

const orderColumns = `id, buyer_id, seller_id, items, total_amount, customer, status, created_at, updated_at`

type orderRepository struct {
	storage *Storage
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return nil, fmt.Errorf("encode customer: %w", err)
	}

	const query = `INSERT INTO orders (id, buyer_id, seller_id, items, total_amount, customer, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.BuyerID, order.SellerID, items, order.TotalAmount, customer, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) GetForBuyer(ctx context.Context, id, buyerID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 AND buyer_id=$2`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id, buyerID))
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, buyerID)
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
	return result, nil
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.SellerOrder, error) {
	const query = `SELECT o.id, o.buyer_id, o.seller_id, o.items, o.total_amount, o.customer, o.status, o.created_at, o.updated_at,
                          COALESCE(u.name, ''), COALESCE(u.email, '')
                   FROM orders o
                   LEFT JOIN users u ON u.id = o.buyer_id
                   WHERE o.seller_id=$1
                   ORDER BY o.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SellerOrder
	for rows.Next() {
		var (
			so              model.SellerOrder
			items, customer []byte
		)
		if err := rows.Scan(
			&so.ID, &so.BuyerID, &so.SellerID, &items, &so.TotalAmount, &customer, &so.Status, &so.CreatedAt, &so.UpdatedAt,
			&so.Buyer.Name, &so.Buyer.Email,
		); err != nil {
			return nil, err
		}
		if err := decodeOrderDocuments(&so.Order, items, customer); err != nil {
			return nil, err
		}
		result = append(result, so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus overwrites the status unconditionally.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + orderColumns
	return scanOrder(r.storage.pool.QueryRow(ctx, query, status, id))
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, lockQuery, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current != from {
			return domainErrors.ErrInvalidTransition
		}

		updateQuery := `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + orderColumns
		order, err := scanOrder(tx.QueryRow(ctx, updateQuery, to, id))
		if err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		order           model.Order
		items, customer []byte
	)
	err := row.Scan(&order.ID, &order.BuyerID, &order.SellerID, &items, &order.TotalAmount, &customer, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := decodeOrderDocuments(&order, items, customer); err != nil {
		return nil, err
	}
	return &order, nil
}

func decodeOrderDocuments(order *model.Order, items, customer []byte) error {
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(customer, &order.Customer); err != nil {
		return fmt.Errorf("decode customer: %w", err)
	}
	return nil
}
