package main

import (
	"encoding/json"

	"intervyo-backend/internal/repository/postgres"
	"intervyo-backend/internal/usecase"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Preview company recommendations for a user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetString("user")
		company, _ := cmd.Flags().GetString("company")

		pool, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewRecommendationUsecase(
			postgres.NewUserRepository(pool),
			postgres.NewInterviewRepository(pool),
			postgres.NewCompanyRepository(pool),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		if company != "" {
			analysis, err := uc.AnalyzeCompanyFit(cmd.Context(), userID, company)
			if err != nil {
				return err
			}
			return enc.Encode(analysis)
		}

		recs, err := uc.Recommend(cmd.Context(), userID)
		if err != nil {
			return err
		}
		return enc.Encode(recs)
	},
}

func init() {
	recommendCmd.Flags().StringP("user", "u", "", "user id")
	recommendCmd.Flags().StringP("company", "c", "", "analyze fit for a single company")
	_ = recommendCmd.MarkFlagRequired("user")
}
