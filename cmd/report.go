package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <course-id>",
	Short: "Generate the instructor struggle report for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := resolveLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		client, err := resolveClient(cmd, log)
		if err != nil {
			return err
		}

		courseID := args[0]

		if withScores, _ := cmd.Flags().GetBool("scores"); withScores {
			data, err := client.StruggleData(cmd.Context(), courseID)
			if err != nil {
				return fmt.Errorf("fetch struggle data: %w", err)
			}
			topics := make([]string, 0, len(data))
			for t := range data {
				topics = append(topics, t)
			}
			sort.Strings(topics)

			fmt.Printf("%-24s  %s\n", "Topic", "Struggle")
			fmt.Println(strings.Repeat("─", 36))
			for _, t := range topics {
				fmt.Printf("%-24s  %.2f\n", t, data[t])
			}
			fmt.Println()
		}

		report, err := client.GenerateInstructorReport(cmd.Context(), courseID)
		if err != nil {
			return fmt.Errorf("generate instructor report: %w", err)
		}
		fmt.Println(report.Report)
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("scores", false, "Also print the per-topic struggle scores")
}
