package usecase

import (
	"context"
	"errors"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

const (
	// recommendationHistory is how many recent interviews feed the catalog-wide ranking
	recommendationHistory = 50
	fitWorkers            = 8
)

type recommendationUsecase struct {
	userRepo      domain.UserRepository
	interviewRepo domain.InterviewRepository
	companyRepo   domain.CompanyRepository
}

func NewRecommendationUsecase(
	userRepo domain.UserRepository,
	interviewRepo domain.InterviewRepository,
	companyRepo domain.CompanyRepository,
) domain.RecommendationUsecase {
	return &recommendationUsecase{
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
		companyRepo:   companyRepo,
	}
}

// Recommend ranks every catalog company by the user's fit
func (uc *recommendationUsecase) Recommend(ctx context.Context, userID string) (*domain.Recommendations, error) {
	if err := uc.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	history, err := uc.interviewRepo.FindByUser(ctx, userID, recommendationHistory)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return &domain.Recommendations{
			Message: domain.NoInterviewsForRecommendations,
			BestFit: []domain.FitResult{},
			All:     []domain.FitResult{},
		}, nil
	}

	companies, err := uc.companyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// Each goroutine owns one slot of results
	results := make([]domain.FitResult, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fitWorkers)
	for i := range companies {
		i := i
		company := &companies[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fit := domain.ComputeFit(domain.FilterByCompany(history, company.Name), company)
			domain.Annotate(&fit, company)
			results[i] = fit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := domain.RankFits(results)
	return &recs, nil
}

// AnalyzeCompanyFit compares the user's full history for one company against its hiring bar
func (uc *recommendationUsecase) AnalyzeCompanyFit(ctx context.Context, userID, companyName string) (*domain.FitAnalysis, error) {
	if err := uc.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.FindByName(ctx, companyName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	history, err := uc.interviewRepo.FindByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	analysis := domain.AnalyzeFit(history, company, companyName)
	return &analysis, nil
}

func (uc *recommendationUsecase) ensureUser(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}
	return nil
}
