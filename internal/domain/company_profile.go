package domain

import (
	"context"
	"time"
)

// HiringBar holds the per-category scores a company expects
type HiringBar struct {
	Technical    float64 `json:"technical"`
	Behavioral   float64 `json:"behavioral"`
	SystemDesign float64 `json:"systemDesign"`
	Overall      float64 `json:"overall"`
}

func DefaultHiringBar() HiringBar {
	return HiringBar{Technical: 70, Behavioral: 65, SystemDesign: 75, Overall: 70}
}

type CompanyCharacteristics struct {
	FocusAreas     []string `json:"focusAreas"`
	InterviewStyle string   `json:"interviewStyle"`
	CommonTopics   []string `json:"commonTopics"`
}

// CompanyProfile is the catalog entry used for fit scoring
type CompanyProfile struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Logo             string                 `json:"logo"`
	HiringBar        HiringBar              `json:"hiringBar"`
	AcceptanceRate   float64                `json:"acceptanceRate"`
	DifficultyRating int                    `json:"difficultyRating"`
	Characteristics  CompanyCharacteristics `json:"characteristics"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

const (
	DefaultAcceptanceRate   = 50
	DefaultDifficultyRating = 5
)

// ApplyDefaults fills zero-valued catalog fields with the standard defaults
func (c *CompanyProfile) ApplyDefaults() {
	def := DefaultHiringBar()
	if c.HiringBar.Technical == 0 {
		c.HiringBar.Technical = def.Technical
	}
	if c.HiringBar.Behavioral == 0 {
		c.HiringBar.Behavioral = def.Behavioral
	}
	if c.HiringBar.SystemDesign == 0 {
		c.HiringBar.SystemDesign = def.SystemDesign
	}
	if c.HiringBar.Overall == 0 {
		c.HiringBar.Overall = def.Overall
	}
	if c.AcceptanceRate == 0 {
		c.AcceptanceRate = DefaultAcceptanceRate
	}
	if c.DifficultyRating == 0 {
		c.DifficultyRating = DefaultDifficultyRating
	}
	if c.Characteristics.FocusAreas == nil {
		c.Characteristics.FocusAreas = []string{}
	}
	if c.Characteristics.CommonTopics == nil {
		c.Characteristics.CommonTopics = []string{}
	}
}

// CompanyRepository defines storage operations
type CompanyRepository interface {
	FindByName(ctx context.Context, name string) (*CompanyProfile, error)
	FindAll(ctx context.Context) ([]CompanyProfile, error)
	Upsert(ctx context.Context, company *CompanyProfile) error
}

// CompanyUsecase manages the company catalog
type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]CompanyProfile, error)
	ImportCompanies(ctx context.Context, companies []CompanyProfile) (int, error)
}
