package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List available courses",
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

		courses, err := client.ListCourses(cmd.Context())
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		fmt.Printf("%-24s  %-10s  %s\n", "ID", "Course", "Title")
		fmt.Println(strings.Repeat("─", 72))
		for _, c := range courses {
			fmt.Printf("%-24s  %-10s  %s\n", c.ID, c.SubjectCode+" "+c.Number, c.Title)
		}
		return nil
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics <course-id>",
	Short: "List the topics for a course",
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

		topics, err := client.ListTopics(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		for _, t := range topics {
			fmt.Println(t)
		}
		return nil
	},
}
