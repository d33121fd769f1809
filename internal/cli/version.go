package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvetools/prox2vmx/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit hash, and build date of prox2vmx.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prox2vmx %s\n", version.Version)
		fmt.Printf("  Commit:     %s\n", version.Commit)
		fmt.Printf("  Build Date: %s\n", version.BuildDate)
	},
}
