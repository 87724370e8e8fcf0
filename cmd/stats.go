package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// weakAreaMinAnswers is how many answers a topic needs before it can be
// called weak.
const weakAreaMinAnswers = 3

var statsCmd = &cobra.Command{
	Use:   "stats <document-id>",
	Short: "Show play statistics for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, err := parseID("document", args[0])
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		d, err := st.Documents().Get(ctx, docID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("document %d not found", docID)
		}
		stats := st.Stats()

		overall, err := stats.Overall(ctx, docID)
		if err != nil {
			return err
		}
		sep := strings.Repeat("─", 60)

		fmt.Println(d.Title)
		fmt.Println(sep)
		fmt.Printf("Questions:       %d\n", overall.TotalQuestions)
		fmt.Printf("Answers:         %d (%d correct, %.0f%%)\n",
			overall.TotalAnswers, overall.CorrectAnswers, overall.Accuracy)
		fmt.Printf("Runs:            %d played, %d won\n", overall.GamesPlayed, overall.GamesCompleted)
		fmt.Printf("Best score:      %d\n", overall.BestScore)
		fmt.Printf("Time played:     %s\n", time.Duration(overall.TotalPlaySecs)*time.Second)

		topics, err := stats.TopicPerformance(ctx, docID)
		if err != nil {
			return err
		}
		if len(topics) > 0 {
			fmt.Println()
			fmt.Println("Topics")
			fmt.Println(sep)
			for _, t := range topics {
				fmt.Printf("%-36s  %4d answers  %5.0f%%\n", truncate(t.Topic, 36), t.Answers, t.Accuracy)
			}
		}

		weak, err := stats.WeakAreas(ctx, docID, weakAreaMinAnswers)
		if err != nil {
			return err
		}
		if len(weak) > 0 {
			names := make([]string, len(weak))
			for i, w := range weak {
				names[i] = w.Topic
			}
			fmt.Printf("\nWorth reviewing: %s\n", strings.Join(names, ", "))
		}

		activity, err := stats.RecentActivity(ctx, docID, days)
		if err != nil {
			return err
		}
		if len(activity) > 0 {
			fmt.Println()
			fmt.Printf("Last %d days\n", days)
			fmt.Println(sep)
			for _, a := range activity {
				fmt.Printf("%s  %4d answers  %5.0f%%\n", a.Date, a.Answers, a.Accuracy)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 7, "Days of recent activity to show")
}
