package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const profileColumns = `id, username, email, full_name, phone, location, role, created_at, updated_at`

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (:id, :username, :email, :full_name, :phone, :location, :role, :created_at, :updated_at)`,
		profile)
	return errors.Wrap(err, "insert profile")
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE profiles
		SET username = :username, email = :email, full_name = :full_name, phone = :phone,
			location = :location, role = :role, updated_at = :updated_at
		WHERE id = :id`,
		profile)
	if err != nil {
		return errors.Wrap(err, "update profile")
	}
	return expectAffected(res, model.ErrProfileNotFound)
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete profile")
	}
	return expectAffected(res, model.ErrProfileNotFound)
}

func (r *ProfileRepository) Find(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find profile %s", id)
	}
	return &profile, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, errors.Wrap(err, "count profiles")
	}
	return count, nil
}

// expectAffected turns an update that matched no rows into notFound.
func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "read affected rows")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
