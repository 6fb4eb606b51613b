package repository

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RegionRepository reads the read-only province > regency > district > village tree.
type RegionRepository interface {
	FindAllProvinces(ctx context.Context) ([]entity.Province, error)
	FindProvinceByID(ctx context.Context, id int) (*entity.Province, error)
	FindRegencyByID(ctx context.Context, id int) (*entity.Regency, error)
	FindDistrictByID(ctx context.Context, id int) (*entity.District, error)
	FindVillageByID(ctx context.Context, id int64) (*entity.Village, error)
	FindRegenciesByProvince(ctx context.Context, provinceID int) ([]entity.Regency, error)
	FindDistrictsByRegency(ctx context.Context, regencyID int) ([]entity.District, error)
	FindVillagesByDistrict(ctx context.Context, districtID int) ([]entity.Village, error)
	SearchRegencies(ctx context.Context, name string) ([]entity.Regency, error)
}

type regionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewRegionRepository(db database.DBTX, log *zap.Logger) RegionRepository {
	return &regionRepository{
		db:  db,
		log: log.With(zap.String("repository", "region")),
	}
}

func (r *regionRepository) FindAllProvinces(ctx context.Context) ([]entity.Province, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, `SELECT id, name FROM provinces ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to find provinces", zap.Error(err))
		return nil, fmt.Errorf("find provinces: %w", err)
	}

	provinces, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.Province])
	if err != nil {
		return nil, fmt.Errorf("collect provinces: %w", err)
	}
	return provinces, nil
}

func (r *regionRepository) FindProvinceByID(ctx context.Context, id int) (*entity.Province, error) {
	var province entity.Province
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT id, name FROM provinces WHERE id = $1`, id).
		Scan(&province.ID, &province.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find province", zap.Error(err), zap.Int("province_id", id))
		return nil, fmt.Errorf("find province %d: %w", id, err)
	}
	return &province, nil
}

func (r *regionRepository) FindRegencyByID(ctx context.Context, id int) (*entity.Regency, error) {
	var regency entity.Regency
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT id, province_id, name FROM regencies WHERE id = $1`, id).
		Scan(&regency.ID, &regency.ProvinceID, &regency.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find regency", zap.Error(err), zap.Int("regency_id", id))
		return nil, fmt.Errorf("find regency %d: %w", id, err)
	}
	return &regency, nil
}

func (r *regionRepository) FindDistrictByID(ctx context.Context, id int) (*entity.District, error) {
	var district entity.District
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT id, regency_id, name FROM districts WHERE id = $1`, id).
		Scan(&district.ID, &district.RegencyID, &district.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find district", zap.Error(err), zap.Int("district_id", id))
		return nil, fmt.Errorf("find district %d: %w", id, err)
	}
	return &district, nil
}

func (r *regionRepository) FindVillageByID(ctx context.Context, id int64) (*entity.Village, error) {
	var village entity.Village
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT id, district_id, name FROM villages WHERE id = $1`, id).
		Scan(&village.ID, &village.DistrictID, &village.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find village", zap.Error(err), zap.Int64("village_id", id))
		return nil, fmt.Errorf("find village %d: %w", id, err)
	}
	return &village, nil
}

func (r *regionRepository) FindRegenciesByProvince(ctx context.Context, provinceID int) ([]entity.Regency, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, province_id, name FROM regencies WHERE province_id = $1 ORDER BY id`, provinceID)
	if err != nil {
		r.log.Error("Failed to find regencies", zap.Error(err), zap.Int("province_id", provinceID))
		return nil, fmt.Errorf("find regencies of province %d: %w", provinceID, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.Regency])
}

func (r *regionRepository) FindDistrictsByRegency(ctx context.Context, regencyID int) ([]entity.District, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, regency_id, name FROM districts WHERE regency_id = $1 ORDER BY id`, regencyID)
	if err != nil {
		r.log.Error("Failed to find districts", zap.Error(err), zap.Int("regency_id", regencyID))
		return nil, fmt.Errorf("find districts of regency %d: %w", regencyID, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.District])
}

func (r *regionRepository) FindVillagesByDistrict(ctx context.Context, districtID int) ([]entity.Village, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, district_id, name FROM villages WHERE district_id = $1 ORDER BY id`, districtID)
	if err != nil {
		r.log.Error("Failed to find villages", zap.Error(err), zap.Int("district_id", districtID))
		return nil, fmt.Errorf("find villages of district %d: %w", districtID, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.Village])
}

// SearchRegencies does a case-insensitive regex match on regency names
func (r *regionRepository) SearchRegencies(ctx context.Context, name string) ([]entity.Regency, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, province_id, name FROM regencies WHERE name ~* $1 ORDER BY id`, name)
	if err != nil {
		r.log.Error("Failed to search regencies", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("search regencies %q: %w", name, err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.Regency])
}
