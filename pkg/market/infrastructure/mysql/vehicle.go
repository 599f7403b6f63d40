package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const vehicleColumns = `id, owner_id, name, description, daily_rate, location, type, image, available, created_at`

type VehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO vehicles (owner_id, name, description, daily_rate, location, type, image, available, created_at)
		VALUES (:owner_id, :name, :description, :daily_rate, :location, :type, :image, :available, :created_at)`,
		vehicle)
	if err != nil {
		return errors.Wrap(err, "insert vehicle")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read vehicle id")
	}
	vehicle.ID = id
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE vehicles
		SET name = :name, description = :description, daily_rate = :daily_rate, location = :location,
			type = :type, image = :image, available = :available
		WHERE id = :id`,
		vehicle)
	if err != nil {
		return errors.Wrap(err, "update vehicle")
	}
	return expectAffected(res, model.ErrVehicleNotFound)
}

func (r *VehicleRepository) Find(ctx context.Context, id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.GetContext(ctx, &vehicle, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrVehicleNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find vehicle %d", id)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	vehicles := []model.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list vehicles")
	}
	return vehicles, nil
}
