package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [document-id]",
	Short: "Start a run on a document, or resume a save with --save",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target runTarget
		if saveID, _ := cmd.Flags().GetInt64("save"); saveID > 0 {
			target.SaveID = saveID
			return runApp(cmd, target)
		}
		if len(args) == 1 {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			target.DocumentID = id
		}
		return runApp(cmd, target)
	},
}

func init() {
	playCmd.Flags().Int64("save", 0, "Resume the saved game with this ID")
}
