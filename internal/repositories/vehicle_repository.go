package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/utils"
)

const vehicleColumns = `id, license_plate, vehicle_type, capacity, fuel_consumption, documents, status, created_at`

type VehicleRepository struct {
	DB intdb.DBTX
}

func scanVehicle(sc rowScanner) (models.Vehicle, error) {
	var (
		v    models.Vehicle
		docs string
	)
	err := sc.Scan(&v.ID, &v.LicensePlate, &v.VehicleType, &v.Capacity, &v.FuelConsumption, &docs, &v.Status, &v.CreatedAt)
	v.Documents = utils.DecodeFileList(docs)
	return v, err
}

// List returns active vehicles ordered by plate.
func (r VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE status = 1 ORDER BY license_plate ASC`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query: %w", err)
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}
	return out, nil
}

func (r VehicleRepository) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err != nil {
		return models.Vehicle{}, notFound(err, "vehicle", id, "get vehicle")
	}
	return v, nil
}

// plateTaken checks uniqueness among all rows, soft-deleted included, since
// the column carries a UNIQUE constraint.
func (r VehicleRepository) plateTaken(ctx context.Context, plate string, exceptID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles WHERE license_plate = ? AND id <> ?`, plate, exceptID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check plate: %w", err)
	}
	return n > 0, nil
}

func (r VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	v.LicensePlate = utils.NormalizePlate(v.LicensePlate)
	if v.LicensePlate == "" {
		return domain.ValidationError{Field: "license_plate", Msg: "required"}
	}
	taken, err := r.plateTaken(ctx, v.LicensePlate, 0)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "vehicle", Msg: "license plate " + v.LicensePlate + " already registered"}
	}

	v.Status = domain.StatusActive
	v.CreatedAt = intdb.NowStamp()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicles (license_plate, vehicle_type, capacity, fuel_consumption, documents, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, v.LicensePlate, strings.TrimSpace(v.VehicleType), v.Capacity, v.FuelConsumption, utils.EncodeFileList(v.Documents), v.Status, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create vehicle: insert: %w", err)
	}
	v.ID, _ = res.LastInsertId()
	return nil
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	v.LicensePlate = utils.NormalizePlate(v.LicensePlate)
	if v.LicensePlate == "" {
		return domain.ValidationError{Field: "license_plate", Msg: "required"}
	}
	taken, err := r.plateTaken(ctx, v.LicensePlate, v.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "vehicle", Msg: "license plate " + v.LicensePlate + " already registered"}
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles
		SET license_plate = ?, vehicle_type = ?, capacity = ?, fuel_consumption = ?
		WHERE id = ? AND status = 1
	`, v.LicensePlate, strings.TrimSpace(v.VehicleType), v.Capacity, v.FuelConsumption, v.ID)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return expectAffected(res, "vehicle", v.ID)
}

func (r VehicleRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE vehicles SET status = 0 WHERE id = ? AND status = 1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return expectAffected(res, "vehicle", id)
}

func (r VehicleRepository) SetDocuments(ctx context.Context, id int64, files []string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE vehicles SET documents = ? WHERE id = ?`, utils.EncodeFileList(files), id)
	if err != nil {
		return fmt.Errorf("set vehicle documents: %w", err)
	}
	return expectAffected(res, "vehicle", id)
}

func (r VehicleRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles WHERE status = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}
