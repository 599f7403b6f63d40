package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const productColumns = `id, name, description, price, quantity, category, image, alt, rating, review_count, farmer_id, version, created_at, updated_at`

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO products (name, description, price, quantity, category, image, alt, rating, review_count, farmer_id, version, created_at, updated_at)
		VALUES (:name, :description, :price, :quantity, :category, :image, :alt, :rating, :review_count, :farmer_id, :version, :created_at, :updated_at)`,
		product)
	if err != nil {
		return errors.Wrap(err, "insert product")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read product id")
	}
	product.ID = id
	return nil
}

// Update succeeds only if the stored row still has the version the caller read.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, quantity = ?, category = ?, image = ?, alt = ?,
			rating = ?, review_count = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		product.Name, product.Description, product.Price, product.Quantity, product.Category,
		product.Image, product.Alt, product.Rating, product.ReviewCount, product.Version,
		product.UpdatedAt, product.ID, product.Version-1)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if affected == 0 {
		if _, err := r.Find(ctx, product.ID); err != nil {
			return err
		}
		return model.ErrOptimisticLock
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Find(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find product %d", id)
	}
	return &product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// DecrementStock locks the product row for the duration of the check and the decrement.
func (r *ProductRepository) DecrementStock(ctx context.Context, id int64, kilograms decimal.Decimal) (*model.Product, error) {
	return r.changeStock(ctx, id, func(product *model.Product) error {
		if kilograms.GreaterThan(product.Quantity) {
			return &model.InsufficientStockError{
				ProductID:   id,
				ProductName: product.Name,
				Requested:   kilograms,
				Available:   product.Quantity,
			}
		}
		product.Quantity = product.Quantity.Sub(kilograms)
		return nil
	})
}

func (r *ProductRepository) RestoreStock(ctx context.Context, id int64, kilograms decimal.Decimal) (*model.Product, error) {
	return r.changeStock(ctx, id, func(product *model.Product) error {
		product.Quantity = product.Quantity.Add(kilograms)
		return nil
	})
}

func (r *ProductRepository) changeStock(ctx context.Context, id int64, change func(product *model.Product) error) (*model.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin stock transaction")
	}
	defer tx.Rollback()

	var product model.Product
	err = tx.GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = ? FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "lock product %d", id)
	}

	if err := change(&product); err != nil {
		return nil, err
	}
	product.Version++

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity = ?, version = ? WHERE id = ?`,
		product.Quantity, product.Version, id); err != nil {
		return nil, errors.Wrapf(err, "update stock of product %d", id)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit stock transaction")
	}
	return &product, nil
}
