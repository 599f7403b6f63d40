package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const (
	orderColumns     = `id, customer_id, total_amount, status, payment_status, transaction_ref, version, created_at, updated_at`
	orderItemColumns = `id, order_id, product_id, product_name, quantity, unit, unit_price, kilograms, total_price`
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// Create stores the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order transaction")
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (:id, :customer_id, :total_amount, :status, :payment_status, :transaction_ref, :version, :created_at, :updated_at)`,
		order); err != nil {
		return errors.Wrap(err, "insert order")
	}

	for _, item := range order.Items {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO order_items (`+orderItemColumns+`)
			VALUES (:id, :order_id, :product_id, :product_name, :quantity, :unit, :unit_price, :kilograms, :total_price)`,
			item); err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order transaction")
}

func (r *OrderRepository) Update(ctx context.Context, order *model.Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, payment_status = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		order.Status, order.PaymentStatus, order.Version, order.UpdatedAt, order.ID, order.Version-1)
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if affected == 0 {
		if _, err := r.Find(ctx, order.ID); err != nil {
			return err
		}
		return model.ErrOptimisticLock
	}
	return nil
}

func (r *OrderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find order %s", id)
	}

	orders := []model.Order{order}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	orders := []model.Order{}
	if err := r.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = ? ORDER BY created_at DESC`, customerID); err != nil {
		return nil, errors.Wrap(err, "list customer orders")
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	if err := r.db.SelectContext(ctx, &orders, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	query, args, err := sqlx.In(`SELECT `+orderItemColumns+` FROM order_items WHERE order_id IN (?) ORDER BY order_id, id`, ids)
	if err != nil {
		return errors.Wrap(err, "build order items query")
	}

	items := []model.OrderItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "list order items")
	}
	for _, item := range items {
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return nil
}
