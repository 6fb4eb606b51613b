package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/cache"

	"go.uber.org/zap"
)

const defaultRegionTTL = 30 * time.Minute

// RegionService serves the administrative region tree. Reads are cached
// and a failing cache only costs a trip to Postgres.
type RegionService interface {
	GetAllProvinces(ctx context.Context) ([]entity.Province, error)
	GetProvince(ctx context.Context, id int) (*entity.Province, error)
	GetRegency(ctx context.Context, id int) (*entity.Regency, error)
	GetDistrict(ctx context.Context, id int) (*entity.District, error)
	GetVillage(ctx context.Context, id int64) (*entity.Village, error)
	FindByCity(ctx context.Context, name string) ([]entity.Regency, error)
}

type regionService struct {
	regions repository.RegionRepository
	cache   cache.Cache
	ttl     time.Duration
	log     *zap.Logger
}

func NewRegionService(regions repository.RegionRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) RegionService {
	if ttl <= 0 {
		ttl = defaultRegionTTL
	}
	return &regionService{
		regions: regions,
		cache:   c,
		ttl:     ttl,
		log:     log.With(zap.String("service", "region")),
	}
}

// cached returns the value under key, loading and storing it on a miss.
// A nil result from load is reported as not found and never stored.
func cached[T any](ctx context.Context, s *regionService, key string, load func() (*T, error)) (*T, error) {
	var hit T
	ok, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		s.log.Warn("Region cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return &hit, nil
	}

	value, err := load()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, apperror.NotFound("region not found")
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("Region cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

func (s *regionService) GetAllProvinces(ctx context.Context) ([]entity.Province, error) {
	provinces, err := cached(ctx, s, "regions:provinces", func() (*[]entity.Province, error) {
		provinces, err := s.regions.FindAllProvinces(ctx)
		if err != nil {
			return nil, fmt.Errorf("find provinces: %w", err)
		}
		return &provinces, nil
	})
	if err != nil {
		return nil, err
	}
	return *provinces, nil
}

func (s *regionService) GetProvince(ctx context.Context, id int) (*entity.Province, error) {
	return cached(ctx, s, fmt.Sprintf("regions:province:%d", id), func() (*entity.Province, error) {
		province, err := s.regions.FindProvinceByID(ctx, id)
		if err != nil || province == nil {
			return nil, err
		}

		province.Regencies, err = s.regions.FindRegenciesByProvince(ctx, id)
		if err != nil {
			return nil, err
		}
		return province, nil
	})
}

func (s *regionService) GetRegency(ctx context.Context, id int) (*entity.Regency, error) {
	return cached(ctx, s, fmt.Sprintf("regions:regency:%d", id), func() (*entity.Regency, error) {
		regency, err := s.regions.FindRegencyByID(ctx, id)
		if err != nil || regency == nil {
			return nil, err
		}

		regency.Province, err = s.regions.FindProvinceByID(ctx, regency.ProvinceID)
		if err != nil {
			return nil, err
		}
		regency.Districts, err = s.regions.FindDistrictsByRegency(ctx, id)
		if err != nil {
			return nil, err
		}
		return regency, nil
	})
}

func (s *regionService) GetDistrict(ctx context.Context, id int) (*entity.District, error) {
	return cached(ctx, s, fmt.Sprintf("regions:district:%d", id), func() (*entity.District, error) {
		district, err := s.regions.FindDistrictByID(ctx, id)
		if err != nil || district == nil {
			return nil, err
		}

		district.Regency, err = s.regions.FindRegencyByID(ctx, district.RegencyID)
		if err != nil {
			return nil, err
		}
		if district.Regency != nil {
			district.Province, err = s.regions.FindProvinceByID(ctx, district.Regency.ProvinceID)
			if err != nil {
				return nil, err
			}
		}
		district.Villages, err = s.regions.FindVillagesByDistrict(ctx, id)
		if err != nil {
			return nil, err
		}
		return district, nil
	})
}

func (s *regionService) GetVillage(ctx context.Context, id int64) (*entity.Village, error) {
	return cached(ctx, s, fmt.Sprintf("regions:village:%d", id), func() (*entity.Village, error) {
		village, err := s.regions.FindVillageByID(ctx, id)
		if err != nil || village == nil {
			return nil, err
		}

		village.District, err = s.regions.FindDistrictByID(ctx, village.DistrictID)
		if err != nil || village.District == nil {
			return village, err
		}
		village.Regency, err = s.regions.FindRegencyByID(ctx, village.District.RegencyID)
		if err != nil || village.Regency == nil {
			return village, err
		}
		village.Province, err = s.regions.FindProvinceByID(ctx, village.Regency.ProvinceID)
		if err != nil {
			return nil, err
		}
		return village, nil
	})
}

// FindByCity matches regency names containing name, ignoring case.
func (s *regionService) FindByCity(ctx context.Context, name string) ([]entity.Regency, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("validation failed", map[string]string{
			"name": "This field is required",
		})
	}

	key := "regions:search:" + strings.ToLower(name)
	regencies, err := cached(ctx, s, key, func() (*[]entity.Regency, error) {
		regencies, err := s.regions.SearchRegencies(ctx, regexp.QuoteMeta(name))
		if err != nil {
			return nil, err
		}
		return &regencies, nil
	})
	if err != nil {
		return nil, err
	}
	return *regencies, nil
}
