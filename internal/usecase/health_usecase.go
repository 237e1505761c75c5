package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger probes one dependency
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	database Pinger
	cache    Pinger
}

// NewHealthUsecase reports on the database and, when cache is non-nil, Redis
func NewHealthUsecase(database, cache Pinger) HealthUsecase {
	return &healthUsecase{database: database, cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{
		"status":   "ok",
		"database": probe(ctx, u.database),
		"redis":    "disabled",
	}
	if u.cache != nil {
		result["redis"] = probe(ctx, u.cache)
	}
	if result["database"] != "up" {
		result["status"] = "degraded"
	}
	return result
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "unknown"
	}
	if err := p(ctx); err != nil {
		return "down"
	}
	return "up"
}
