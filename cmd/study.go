package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comp423-25s/csxl-team-f3/internal/progress"
	"github.com/comp423-25s/csxl-team-f3/internal/session"
	"github.com/comp423-25s/csxl-team-f3/internal/studyapi"
)

var studyCmd = &cobra.Command{
	Use:   "study <course-id>",
	Short: "Start an interactive practice session",
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

		topics, _ := cmd.Flags().GetStringSlice("topics")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		qtype, _ := cmd.Flags().GetString("type")

		course, err := findCourse(cmd, client, args[0])
		if err != nil {
			return err
		}

		agg := progress.NewAggregator()
		orch := session.New(client, agg, log, resolveUserID(cmd))
		orch.SelectCourse(*course)

		if len(topics) == 0 {
			topics, err = client.ListTopics(cmd.Context(), course.ID)
			if err != nil {
				return fmt.Errorf("list topics: %w", err)
			}
		}

		done, err := orch.RequestPracticeProblems(cmd.Context(), topics,
			studyapi.Difficulty(difficulty), studyapi.QuestionType(qtype))
		if err != nil {
			return err
		}
		fmt.Println("Generating practice problems...")
		if err := <-done; err != nil {
			return fmt.Errorf("generate practice problems: %w", err)
		}

		problems := orch.Problems()
		if len(problems) == 0 {
			fmt.Println("No practice problems were generated.")
			return nil
		}

		scanner := bufio.NewScanner(os.Stdin)
		for i, p := range problems {
			fmt.Printf("\n[%d/%d] %s\n", i+1, len(problems), p.QuestionText)
			if p.QuestionType == studyapi.TypeMultipleChoice {
				fmt.Println("Options:", p.Answer)
			}
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}

			_, err := orch.SubmitAnswer(p.ID, strings.TrimSpace(scanner.Text()))
			if err != nil {
				fmt.Println("Could not grade answer:", err)
				continue
			}
			entries := orch.Transcript()
			fmt.Println(entries[len(entries)-1].Message)
		}

		closed, err := orch.EndSession("")
		if err != nil {
			return err
		}

		fmt.Println()
		if closed.Score != nil {
			fmt.Printf("Session score: %.0f%%\n", *closed.Score*100)
		} else {
			fmt.Println("Session complete. Nothing was graded locally.")
		}
		printProgress(agg.Summarize(resolveUserID(cmd), course.ID))
		return nil
	},
}

func init() {
	studyCmd.Flags().StringSlice("topics", nil, "Topics to practice (default: all course topics)")
	studyCmd.Flags().String("difficulty", "medium", "Problem difficulty: easy, medium, hard")
	studyCmd.Flags().String("type", "multiple_choice", "Question type: multiple_choice, free_response, coding")
}

// findCourse resolves a course id against the catalog.
func findCourse(cmd *cobra.Command, client studyapi.Client, courseID string) (*studyapi.Course, error) {
	courses, err := client.ListCourses(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	for _, c := range courses {
		if c.ID == courseID {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("course %q not found", courseID)
}

func printProgress(records []progress.StudentProgress) {
	if len(records) == 0 {
		return
	}
	fmt.Println("\nTopic progress:")
	for _, r := range records {
		fmt.Printf("  %-24s %d/%d correct (%.0f%%)\n",
			r.Topic, r.ProblemsCorrect, r.ProblemsAttempted, r.ProficiencyScore*100)
	}
}
