package main

import (
	"fmt"

	"intervyo-backend/internal/domain"
	"intervyo-backend/internal/repository/postgres"
	"intervyo-backend/internal/usecase"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type catalogFile struct {
	Companies []catalogEntry `mapstructure:"companies"`
}

type catalogEntry struct {
	Name             string  `mapstructure:"name"`
	Logo             string  `mapstructure:"logo"`
	AcceptanceRate   float64 `mapstructure:"acceptance-rate"`
	DifficultyRating int     `mapstructure:"difficulty-rating"`
	HiringBar        struct {
		Technical    float64 `mapstructure:"technical"`
		Behavioral   float64 `mapstructure:"behavioral"`
		SystemDesign float64 `mapstructure:"system-design"`
		Overall      float64 `mapstructure:"overall"`
	} `mapstructure:"hiring-bar"`
	FocusAreas     []string `mapstructure:"focus-areas"`
	InterviewStyle string   `mapstructure:"interview-style"`
	CommonTopics   []string `mapstructure:"common-topics"`
}

func (e catalogEntry) profile() domain.CompanyProfile {
	return domain.CompanyProfile{
		Name:             e.Name,
		Logo:             e.Logo,
		AcceptanceRate:   e.AcceptanceRate,
		DifficultyRating: e.DifficultyRating,
		HiringBar: domain.HiringBar{
			Technical:    e.HiringBar.Technical,
			Behavioral:   e.HiringBar.Behavioral,
			SystemDesign: e.HiringBar.SystemDesign,
			Overall:      e.HiringBar.Overall,
		},
		Characteristics: domain.CompanyCharacteristics{
			FocusAreas:     e.FocusAreas,
			InterviewStyle: e.InterviewStyle,
			CommonTopics:   e.CommonTopics,
		},
	}
}

// loadCatalog reads a YAML (or JSON/TOML) company catalog
func loadCatalog(path string) ([]domain.CompanyProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var catalog catalogFile
	if err := v.Unmarshal(&catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(catalog.Companies) == 0 {
		return nil, fmt.Errorf("catalog %s has no companies", path)
	}

	profiles := make([]domain.CompanyProfile, 0, len(catalog.Companies))
	for _, e := range catalog.Companies {
		profiles = append(profiles, e.profile())
	}
	return profiles, nil
}

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Manage the company catalog",
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Upsert companies from a catalog file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		profiles, err := loadCatalog(path)
		if err != nil {
			return err
		}

		pool, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewCompanyUsecase(postgres.NewCompanyRepository(pool))
		stored, err := uc.ImportCompanies(cmd.Context(), profiles)
		if err != nil {
			return fmt.Errorf("imported %d of %d companies: %w", stored, len(profiles), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d companies\n", stored)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the company catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pool, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		companies, err := usecase.NewCompanyUsecase(postgres.NewCompanyRepository(pool)).ListCompanies(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range companies {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s difficulty=%d acceptance=%.0f%% bar=%.0f\n",
				c.Name, c.DifficultyRating, c.AcceptanceRate, c.HiringBar.Overall)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("file", "f", "", "catalog file")
	_ = importCmd.MarkFlagRequired("file")

	companiesCmd.AddCommand(importCmd, listCmd)
}
