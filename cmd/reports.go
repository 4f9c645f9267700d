package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/report"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/utils"
)

var reportsCmd = &cobra.Command{
	Use:   "reports [dir]",
	Short: "List the artifacts recorded in a workspace manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		} else if c, err := ensureConfig(); err == nil {
			dir = c.ExportDir
		}

		root, err := utils.FindWorkspaceRoot(dir)
		if err != nil {
			return err
		}
		ws, err := report.Load(root)
		if err != nil {
			return err
		}

		fmt.Printf("Workspace %s (session %s)\n", ws.Name, ws.SessionID)
		fmt.Printf("Source: %s\n", ws.Source)
		arts := ws.List()
		if len(arts) == 0 {
			fmt.Println("No artifacts recorded yet.")
			return nil
		}
		for _, a := range arts {
			fmt.Printf("  %-6s %-40s %s\n", a.Kind, a.Name, a.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
