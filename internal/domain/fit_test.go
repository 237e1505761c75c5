package domain_test

import (
	"testing"
	"time"

	"intervyo-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func record(company, kind string, s float64, at time.Time) domain.InterviewRecord {
	return domain.InterviewRecord{TargetCompany: company, InterviewType: kind, OverallScore: score(s), CreatedAt: at}
}

func company(name string) *domain.CompanyProfile {
	c := &domain.CompanyProfile{Name: name}
	c.ApplyDefaults()
	return c
}

func TestComputeFit_ScoresAtBarAreExcellent(t *testing.T) {
	now := time.Now()
	history := []domain.InterviewRecord{
		record("Acme", domain.InterviewTechnical, 70, now),
		record("Acme", domain.InterviewBehavioral, 65, now),
		record("Acme", domain.InterviewSystemDesign, 75, now),
	}

	fit := domain.ComputeFit(history, company("Acme"))

	assert.Equal(t, 100, fit.FitScore)
	assert.Equal(t, domain.ReadinessExcellent, fit.ReadinessLevel)
	assert.Equal(t, domain.CategoryScores{}, *fit.Gaps)
	assert.Equal(t, 50, fit.SuccessProbability)
}

func TestComputeFit_EmptyCategoryUsesZeroMean(t *testing.T) {
	fit := domain.ComputeFit(nil, company("Acme"))

	// (30 + 35 + 25) / 3
	assert.Equal(t, 30, fit.FitScore)
	assert.Equal(t, domain.CategoryScores{Technical: 70, Behavioral: 65, SystemDesign: 75}, *fit.Gaps)
	assert.Equal(t, domain.ReadinessNotReady, fit.ReadinessLevel)
}

func TestComputeFit_OverPerformanceIsPenalized(t *testing.T) {
	c := company("Acme")
	c.HiringBar = domain.HiringBar{Technical: 50, Behavioral: 50, SystemDesign: 50}
	history := []domain.InterviewRecord{
		record("Acme", domain.InterviewTechnical, 100, time.Now()),
		record("Acme", domain.InterviewBehavioral, 100, time.Now()),
		record("Acme", domain.InterviewSystemDesign, 100, time.Now()),
	}

	fit := domain.ComputeFit(history, c)

	assert.Equal(t, 50, fit.FitScore)
	assert.Equal(t, -50, fit.Gaps.Technical)
}

func TestComputeFit_SuccessProbability(t *testing.T) {
	c := company("Acme")
	c.HiringBar = domain.HiringBar{Technical: 80, Behavioral: 80, SystemDesign: 80}
	c.AcceptanceRate = 50
	history := []domain.InterviewRecord{
		record("Acme", domain.InterviewTechnical, 60, time.Now()),
		record("Acme", domain.InterviewBehavioral, 60, time.Now()),
		record("Acme", domain.InterviewSystemDesign, 60, time.Now()),
	}

	fit := domain.ComputeFit(history, c)

	require.Equal(t, 80, fit.FitScore)
	assert.Equal(t, 40, fit.SuccessProbability)
}

func TestComputeFit_MissingScoreCountsAsZero(t *testing.T) {
	history := []domain.InterviewRecord{
		record("Acme", domain.InterviewTechnical, 80, time.Now()),
		{TargetCompany: "Acme", InterviewType: domain.InterviewTechnical},
	}

	fit := domain.ComputeFit(history, company("Acme"))

	assert.Equal(t, 40, fit.Scores.Technical)
}

func TestComputeFit_BoundsAndDeterminism(t *testing.T) {
	scores := []float64{0, 12.5, 33, 49.5, 50, 77.7, 99, 100}
	kinds := []string{domain.InterviewTechnical, domain.InterviewBehavioral, domain.InterviewSystemDesign, "unknown"}
	rates := []float64{0, 25, 50, 100}

	for _, rate := range rates {
		var history []domain.InterviewRecord
		for i, s := range scores {
			history = append(history, record("Acme", kinds[i%len(kinds)], s, time.Now()))

			c := company("Acme")
			c.AcceptanceRate = rate
			first := domain.ComputeFit(history, c)
			second := domain.ComputeFit(history, c)

			assert.Equal(t, first, second)
			assert.GreaterOrEqual(t, first.FitScore, 0)
			assert.LessOrEqual(t, first.FitScore, 100)
			assert.GreaterOrEqual(t, first.SuccessProbability, 0)
			assert.LessOrEqual(t, first.SuccessProbability, 100)
		}
	}
}

func TestComputeFit_NilCompany(t *testing.T) {
	fit := domain.ComputeFit(nil, nil)
	assert.Equal(t, 0, fit.FitScore)
	assert.Equal(t, domain.CompanyDataUnavailable, fit.Analysis)
}

func TestReadinessFor(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Readiness
	}{
		{100, domain.ReadinessExcellent},
		{85, domain.ReadinessExcellent},
		{84, domain.ReadinessGood},
		{70, domain.ReadinessGood},
		{69, domain.ReadinessModerate},
		{55, domain.ReadinessModerate},
		{54, domain.ReadinessNeedsWork},
		{40, domain.ReadinessNeedsWork},
		{39, domain.ReadinessNotReady},
		{0, domain.ReadinessNotReady},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ReadinessFor(tt.score), "score %d", tt.score)
	}
}

func TestAnnotate(t *testing.T) {
	t.Run("well prepared gets encouragement", func(t *testing.T) {
		c := company("Acme")
		fit := domain.ComputeFit([]domain.InterviewRecord{
			record("Acme", domain.InterviewTechnical, 70, time.Now()),
			record("Acme", domain.InterviewBehavioral, 65, time.Now()),
			record("Acme", domain.InterviewSystemDesign, 75, time.Now()),
		}, c)

		domain.Annotate(&fit, c)

		assert.Equal(t, []string{"Strong technical skills", "Excellent communication", "Great system design skills"}, fit.Strengths)
		assert.Empty(t, fit.Weaknesses)
		assert.Equal(t, []string{"You're well-prepared for Acme! Keep practicing."}, fit.Recommendations)
		require.NotNil(t, fit.CompanyInfo)
		assert.Equal(t, 5, fit.CompanyInfo.DifficultyRating)
	})

	t.Run("large gaps get advice", func(t *testing.T) {
		c := company("Acme")
		fit := domain.ComputeFit(nil, c)

		domain.Annotate(&fit, c)

		assert.Empty(t, fit.Strengths)
		assert.Len(t, fit.Weaknesses, 3)
		assert.Equal(t, []string{
			"Focus on technical interview preparation",
			"Practice behavioral questions using STAR method",
			"Study system design patterns and architectures",
		}, fit.Recommendations)
	})

	t.Run("gap between thresholds is neither", func(t *testing.T) {
		c := company("Acme")
		fit := domain.ComputeFit([]domain.InterviewRecord{
			record("Acme", domain.InterviewTechnical, 58, time.Now()),   // gap 12
			record("Acme", domain.InterviewBehavioral, 60, time.Now()),  // gap 5
			record("Acme", domain.InterviewSystemDesign, 80, time.Now()), // gap -5
		}, c)
		domain.Annotate(&fit, c)

		assert.Equal(t, []string{"Great system design skills"}, fit.Strengths)
		assert.Empty(t, fit.Weaknesses)
	})
}

func TestRankFits(t *testing.T) {
	results := []domain.FitResult{
		{Company: "A", FitScore: 50},
		{Company: "B", FitScore: 80},
		{Company: "C", FitScore: 50},
		{Company: "D", FitScore: 90},
		{Company: "E", FitScore: 80},
	}

	recs := domain.RankFits(results)

	var order []string
	for _, r := range recs.All {
		order = append(order, r.Company)
	}
	assert.Equal(t, []string{"D", "B", "E", "A", "C"}, order)
	assert.Equal(t, recs.All[:3], recs.BestFit)
	assert.Equal(t, 5, recs.TotalCompanies)

	small := domain.RankFits(results[:2])
	assert.Len(t, small.BestFit, 2)
	assert.Equal(t, "A", results[0].Company, "input is not reordered")
}

func TestAnalyzeFit(t *testing.T) {
	now := time.Now()
	history := []domain.InterviewRecord{
		record("Acme", domain.InterviewTechnical, 80, now),
		record("Other", domain.InterviewTechnical, 10, now.Add(-time.Hour)),
		record("Acme", domain.InterviewBehavioral, 50, now.Add(-2*time.Hour)),
	}

	analysis := domain.AnalyzeFit(history, company("Acme"), "Acme")

	assert.Equal(t, 2, analysis.InterviewHistory)
	assert.Equal(t, 30, analysis.Improvement)
	require.NotNil(t, analysis.LastInterviewDate)
	assert.Equal(t, now, *analysis.LastInterviewDate)
	assert.False(t, analysis.DetailedAnalysis.ReadyForInterview)
	assert.Equal(t, analysis.Weaknesses, analysis.DetailedAnalysis.KeyFocusAreas)
	assert.Contains(t, analysis.DetailedAnalysis.KeyFocusAreas, "System design needs practice")

	t.Run("unknown company", func(t *testing.T) {
		a := domain.AnalyzeFit(history, nil, "Nowhere")
		assert.Equal(t, "Nowhere", a.Company)
		assert.Equal(t, domain.CompanyDataUnavailable, a.Analysis)
		assert.Equal(t, []string{"Maintain current skill level", "Practice regularly"}, a.DetailedAnalysis.KeyFocusAreas)
	})
}

func TestPreparationEstimate(t *testing.T) {
	assert.Equal(t, "Ready now", domain.PreparationEstimate(70))
	assert.Equal(t, "1 weeks", domain.PreparationEstimate(69))
	assert.Equal(t, "2 weeks", domain.PreparationEstimate(60))
	assert.Equal(t, "14 weeks", domain.PreparationEstimate(0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3, domain.Round(2.5))
	assert.Equal(t, 2, domain.Round(2.49))
	assert.Equal(t, -2, domain.Round(-2.5))
	assert.Equal(t, 0, domain.Round(0))
}
