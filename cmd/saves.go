package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved games",
}

var savesListCmd = &cobra.Command{
	Use:   "list <document-id>",
	Short: "List saved games for a document, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, err := parseID("document", args[0])
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		saves, err := st.Saves().ListSaves(cmd.Context(), docID)
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			fmt.Println("No saved games.")
			return nil
		}

		fmt.Printf("%-5s  %-28s  %9s  %7s  %6s  %5s  %s\n",
			"ID", "Name", "Encounter", "HP", "Score", "Level", "Saved")
		fmt.Println(strings.Repeat("─", 84))
		for _, s := range saves {
			fmt.Printf("%-5d  %-28s  %9d  %7s  %6d  %5d  %s\n",
				s.ID, truncate(s.Name, 28), s.CurrentEncounter,
				fmt.Sprintf("%d/%d", s.PlayerHP, s.PlayerMaxHP),
				s.Score, s.PlayerLevel, s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println("\nResume with: quizrogue play --save <id>")
		return nil
	},
}

var savesDeleteCmd = &cobra.Command{
	Use:     "delete <save-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved game",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("save", args[0])
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Saves().DeleteSave(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted save %d\n", id)
		return nil
	},
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}
