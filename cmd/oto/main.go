package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oto-sh/oto/cmd/oto/cmds"
)

var rootCmd = &cobra.Command{
	Use:   "oto",
	Short: "Oto — your studio desktop in the terminal",
	Long: `Oto is a terminal desktop for agencies and creators: a conversational
home screen with app windows for spaces, conversations, contacts, agents and
more, opened from a launchpad overlay.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return cmds.RunShell(configPath)
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "path to config.yaml (default: user config dir)")
	rootCmd.AddCommand(cmds.NewVersionCmd())
	rootCmd.AddCommand(cmds.NewPrefsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
