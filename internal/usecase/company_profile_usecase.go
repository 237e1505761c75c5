package usecase

import (
	"context"
	"fmt"
	"strings"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/logger"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
}

// NewCompanyUsecase creates a new company catalog usecase
func NewCompanyUsecase(companyRepo domain.CompanyRepository) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo}
}

func (uc *companyUsecase) ListCompanies(ctx context.Context) ([]domain.CompanyProfile, error) {
	return uc.companyRepo.FindAll(ctx)
}

// ImportCompanies validates and upserts catalog entries by name, returning how many were stored
func (uc *companyUsecase) ImportCompanies(ctx context.Context, companies []domain.CompanyProfile) (int, error) {
	seen := make(map[string]bool, len(companies))
	for i := range companies {
		c := &companies[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return 0, apperror.BadRequest(fmt.Sprintf("Company #%d has no name", i+1))
		}
		if seen[c.Name] {
			return 0, apperror.BadRequest(fmt.Sprintf("Duplicate company: %s", c.Name))
		}
		seen[c.Name] = true

		c.ApplyDefaults()
		if err := validateCompany(c); err != nil {
			return 0, err
		}
	}

	stored := 0
	for i := range companies {
		if err := uc.companyRepo.Upsert(ctx, &companies[i]); err != nil {
			return stored, fmt.Errorf("upsert %s: %w", companies[i].Name, err)
		}
		stored++
	}

	logger.Log.Info("Company catalog imported", "count", stored)
	return stored, nil
}

func validateCompany(c *domain.CompanyProfile) error {
	if c.AcceptanceRate < 0 || c.AcceptanceRate > 100 {
		return apperror.BadRequest(fmt.Sprintf("%s: acceptance rate must be between 0 and 100", c.Name))
	}
	if c.DifficultyRating < 1 || c.DifficultyRating > 10 {
		return apperror.BadRequest(fmt.Sprintf("%s: difficulty rating must be between 1 and 10", c.Name))
	}
	bar := c.HiringBar
	for _, v := range []float64{bar.Technical, bar.Behavioral, bar.SystemDesign, bar.Overall} {
		if v < 0 || v > 100 {
			return apperror.BadRequest(fmt.Sprintf("%s: hiring bar values must be between 0 and 100", c.Name))
		}
	}
	return nil
}
