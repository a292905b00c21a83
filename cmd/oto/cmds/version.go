package cmds

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the oto version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("oto %s (%s)\n", Version, Commit)
		},
	}
}
