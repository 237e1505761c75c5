package domain

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// Readiness is the categorical label derived from a fit score
type Readiness string

const (
	ReadinessNotReady  Readiness = "Not Ready"
	ReadinessNeedsWork Readiness = "Needs Work"
	ReadinessModerate  Readiness = "Moderate"
	ReadinessGood      Readiness = "Good"
	ReadinessExcellent Readiness = "Excellent"
)

// ReadinessFor maps a fit score to its readiness level
func ReadinessFor(fitScore int) Readiness {
	switch {
	case fitScore >= 85:
		return ReadinessExcellent
	case fitScore >= 70:
		return ReadinessGood
	case fitScore >= 55:
		return ReadinessModerate
	case fitScore >= 40:
		return ReadinessNeedsWork
	default:
		return ReadinessNotReady
	}
}

const (
	strengthGap       = 0
	weaknessGap       = 15
	adviceGap         = 10
	wellPreparedScore = 70
	bestFitCount      = 3
)

const CompanyDataUnavailable = "Company data not available"

// CategoryScores holds one rounded value per interview category
type CategoryScores struct {
	Technical    int `json:"technical"`
	Behavioral   int `json:"behavioral"`
	SystemDesign int `json:"systemDesign"`
}

type CompanyInfo struct {
	Logo             string                 `json:"logo"`
	DifficultyRating int                    `json:"difficultyRating"`
	AcceptanceRate   float64                `json:"acceptanceRate"`
	Characteristics  CompanyCharacteristics `json:"characteristics"`
}

// FitResult is computed on every request and never stored
type FitResult struct {
	Company            string          `json:"company"`
	FitScore           int             `json:"fitScore"`
	ReadinessLevel     Readiness       `json:"readinessLevel,omitempty"`
	SuccessProbability int             `json:"successProbability"`
	Scores             *CategoryScores `json:"scores,omitempty"`
	Gaps               *CategoryScores `json:"gaps,omitempty"`
	HiringBar          *HiringBar      `json:"hiringBar,omitempty"`
	Strengths          []string        `json:"strengths"`
	Weaknesses         []string        `json:"weaknesses"`
	Recommendations    []string        `json:"recommendations"`
	CompanyInfo        *CompanyInfo    `json:"companyInfo,omitempty"`
	Analysis           string          `json:"analysis,omitempty"`
}

// UnavailableFit is the result for a company missing from the catalog
func UnavailableFit(companyName string) FitResult {
	return FitResult{
		Company:         companyName,
		Analysis:        CompanyDataUnavailable,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}
}

// ComputeFit scores history against the company's hiring bar.
// Every record in history counts; callers narrow it to one company first when needed.
func ComputeFit(history []InterviewRecord, company *CompanyProfile) FitResult {
	if company == nil {
		return UnavailableFit("")
	}

	var sums, counts [3]float64
	for _, r := range history {
		idx := categoryIndex(r.InterviewType)
		if idx < 0 {
			continue
		}
		sums[idx] += r.Score()
		counts[idx]++
	}

	var means [3]float64
	for i := range means {
		if counts[i] > 0 {
			means[i] = sums[i] / counts[i]
		}
	}

	bar := company.HiringBar
	gaps := [3]float64{
		bar.Technical - means[0],
		bar.Behavioral - means[1],
		bar.SystemDesign - means[2],
	}

	var fitSum float64
	for _, g := range gaps {
		fitSum += math.Max(0, 100-math.Abs(g))
	}
	fitScore := Round(fitSum / 3)

	probability := clamp(float64(fitScore)*company.AcceptanceRate/100, 0, 100)

	return FitResult{
		Company:            company.Name,
		FitScore:           fitScore,
		ReadinessLevel:     ReadinessFor(fitScore),
		SuccessProbability: Round(probability),
		Scores: &CategoryScores{
			Technical:    Round(means[0]),
			Behavioral:   Round(means[1]),
			SystemDesign: Round(means[2]),
		},
		Gaps: &CategoryScores{
			Technical:    Round(gaps[0]),
			Behavioral:   Round(gaps[1]),
			SystemDesign: Round(gaps[2]),
		},
		HiringBar:       &bar,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}
}

// Annotate attaches strengths, weaknesses, advice and catalog info to a computed result
func Annotate(fit *FitResult, company *CompanyProfile) {
	if fit.Gaps == nil || company == nil {
		return
	}

	categories := []struct {
		gap      int
		strength string
		weakness string
		advice   string
	}{
		{fit.Gaps.Technical, "Strong technical skills", "Technical skills need improvement", "Focus on technical interview preparation"},
		{fit.Gaps.Behavioral, "Excellent communication", "Behavioral skills need work", "Practice behavioral questions using STAR method"},
		{fit.Gaps.SystemDesign, "Great system design skills", "System design needs practice", "Study system design patterns and architectures"},
	}

	for _, c := range categories {
		if c.gap <= strengthGap {
			fit.Strengths = append(fit.Strengths, c.strength)
		} else if c.gap > weaknessGap {
			fit.Weaknesses = append(fit.Weaknesses, c.weakness)
		}
	}

	if fit.FitScore >= wellPreparedScore {
		fit.Recommendations = append(fit.Recommendations, fmt.Sprintf("You're well-prepared for %s! Keep practicing.", company.Name))
	} else {
		for _, c := range categories {
			if c.gap > adviceGap {
				fit.Recommendations = append(fit.Recommendations, c.advice)
			}
		}
	}

	fit.CompanyInfo = &CompanyInfo{
		Logo:             company.Logo,
		DifficultyRating: company.DifficultyRating,
		AcceptanceRate:   company.AcceptanceRate,
		Characteristics:  company.Characteristics,
	}
}

const NoInterviewsForRecommendations = "Complete some interviews first to get personalized recommendations"

// Recommendations is the ranked fit of a user against the whole catalog
type Recommendations struct {
	Message        string      `json:"message,omitempty"`
	TotalCompanies int         `json:"totalCompanies"`
	BestFit        []FitResult `json:"bestFit"`
	All            []FitResult `json:"allRecommendations"`
}

// RankFits orders results by fit score, highest first, keeping catalog order on ties
func RankFits(results []FitResult) Recommendations {
	ranked := make([]FitResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FitScore > ranked[j].FitScore
	})

	n := bestFitCount
	if len(ranked) < n {
		n = len(ranked)
	}
	return Recommendations{
		TotalCompanies: len(ranked),
		BestFit:        ranked[:n],
		All:            ranked,
	}
}

// FitAnalysis extends a FitResult with the user's history against one company
type FitAnalysis struct {
	FitResult
	InterviewHistory  int              `json:"interviewHistory"`
	Improvement       int              `json:"improvement"`
	LastInterviewDate *time.Time       `json:"lastInterviewDate,omitempty"`
	DetailedAnalysis  DetailedAnalysis `json:"detailedAnalysis"`
}

type DetailedAnalysis struct {
	ReadyForInterview        bool     `json:"readyForInterview"`
	EstimatedPreparationTime string   `json:"estimatedPreparationTime"`
	KeyFocusAreas            []string `json:"keyFocusAreas"`
}

// AnalyzeFit builds the detailed analysis. history must be newest first.
func AnalyzeFit(history []InterviewRecord, company *CompanyProfile, companyName string) FitAnalysis {
	records := FilterByCompany(history, companyName)

	var fit FitResult
	if company == nil {
		fit = UnavailableFit(companyName)
	} else {
		fit = ComputeFit(records, company)
		Annotate(&fit, company)
	}

	analysis := FitAnalysis{
		FitResult:        fit,
		InterviewHistory: len(records),
	}

	if len(records) >= 2 {
		analysis.Improvement = Round(records[0].Score() - records[len(records)-1].Score())
	}
	if len(records) > 0 {
		last := records[0].CreatedAt
		analysis.LastInterviewDate = &last
	}

	analysis.DetailedAnalysis = DetailedAnalysis{
		ReadyForInterview:        fit.FitScore >= wellPreparedScore,
		EstimatedPreparationTime: PreparationEstimate(fit.FitScore),
		KeyFocusAreas:            fit.Weaknesses,
	}
	if len(fit.Weaknesses) == 0 {
		analysis.DetailedAnalysis.KeyFocusAreas = []string{"Maintain current skill level", "Practice regularly"}
	}

	return analysis
}

// PreparationEstimate assumes five fit points gained per week of practice
func PreparationEstimate(fitScore int) string {
	if fitScore >= wellPreparedScore {
		return "Ready now"
	}
	weeks := int(math.Ceil(float64(wellPreparedScore-fitScore) / 5))
	return fmt.Sprintf("%d weeks", weeks)
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID string) (*Recommendations, error)
	AnalyzeCompanyFit(ctx context.Context, userID, companyName string) (*FitAnalysis, error)
}

func categoryIndex(interviewType string) int {
	switch interviewType {
	case InterviewTechnical:
		return 0
	case InterviewBehavioral:
		return 1
	case InterviewSystemDesign:
		return 2
	default:
		return -1
	}
}

// Round rounds to the nearest integer with halves going up
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
