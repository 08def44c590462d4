package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comp423-25s/csxl-team-f3/internal/progress"
	"github.com/comp423-25s/csxl-team-f3/internal/session"
)

var guideCmd = &cobra.Command{
	Use:   "guide <course-id>",
	Short: "Generate a study guide for a course",
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

		course, err := findCourse(cmd, client, args[0])
		if err != nil {
			return err
		}

		topics, _ := cmd.Flags().GetStringSlice("topics")
		if len(topics) == 0 {
			topics, err = client.ListTopics(cmd.Context(), course.ID)
			if err != nil {
				return fmt.Errorf("list topics: %w", err)
			}
		}

		orch := session.New(client, progress.NewAggregator(), log, resolveUserID(cmd))
		orch.SelectCourse(*course)

		done, err := orch.RequestStudyGuide(cmd.Context(), topics)
		if err != nil {
			return err
		}
		fmt.Println("Generating study guide...")
		if err := <-done; err != nil {
			return fmt.Errorf("generate study guide: %w", err)
		}

		fmt.Println(orch.Guide().Content)
		return nil
	},
}

func init() {
	guideCmd.Flags().StringSlice("topics", nil, "Topics to cover (default: all course topics)")
}
