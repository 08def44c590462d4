package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comp423-25s/csxl-team-f3/internal/studyapi"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "AI study assistant for the course platform",
	Long:  "Study Buddy — practice problems, study guides, and progress tracking backed by the course platform's generation API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional; env vars and flags win over .env entries.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("base-url", "", "Course platform base URL (overrides STUDYBUDDY_BASE_URL)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the platform API (overrides STUDYBUDDY_TOKEN)")
	rootCmd.PersistentFlags().String("user", "", "User id progress is recorded under (overrides STUDYBUDDY_USER)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveClient builds the backend client from flags and environment.
func resolveClient(cmd *cobra.Command, log *zap.Logger) (studyapi.Client, error) {
	cfg := studyapi.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("base-url"); u != "" {
		cfg.BaseURL = u
	}
	if t, _ := cmd.Flags().GetString("token"); t != "" {
		cfg.BearerToken = t
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := studyapi.NewClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	return client, nil
}

// resolveLogger builds the process logger.
func resolveLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// resolveUserID returns the id progress is recorded under.
func resolveUserID(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := envOr("STUDYBUDDY_USER", ""); u != "" {
		return u
	}
	return "student"
}
