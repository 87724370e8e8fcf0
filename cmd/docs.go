package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizrogue/internal/document"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage study documents",
}

var docsAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a .txt or .md document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		l, err := document.Register(cmd.Context(), st.Documents(), args[0])
		if err != nil {
			return err
		}
		if l.Existing {
			fmt.Printf("Already registered as document %d: %s\n", l.ID, l.Title)
			return nil
		}
		fmt.Printf("Registered document %d: %s\n", l.ID, l.Title)
		fmt.Printf("  %d characters in %d chunks\n", len([]rune(l.Text)), len(l.Chunks))
		if len(l.Topics) > 0 {
			fmt.Printf("  Topics: %s\n", strings.Join(l.Topics, ", "))
		}
		fmt.Printf("\nNext: quizrogue generate %d\n", l.ID)
		return nil
	},
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		docs, err := st.Documents().List(ctx)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents yet. Add one with: quizrogue docs add <file>")
			return nil
		}

		fmt.Printf("%-5s  %-36s  %9s  %9s  %s\n", "ID", "Title", "Chars", "Questions", "Added")
		fmt.Println(strings.Repeat("─", 80))
		for _, d := range docs {
			n, err := st.Questions().QuestionCount(ctx, d.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%-5d  %-36s  %9d  %9d  %s\n",
				d.ID, truncate(d.Title, 36), d.TotalChars, n, d.CreatedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}

var docsRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a document with its questions, saves and stats",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("document", args[0])
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := st.Documents().Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("document %d not found", id)
		}
		if err := st.Documents().Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Removed document %d: %s\n", id, d.Title)
		return nil
	},
}

func init() {
	docsCmd.AddCommand(docsAddCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRemoveCmd)
}
