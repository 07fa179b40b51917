package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		version := buildVersion
		if version == "" {
			version = "dev"
		}
		fmt.Printf("skiff %s", version)
		if buildCommit != "" {
			fmt.Printf(" (%s)", buildCommit)
		}
		if buildDate != "" {
			fmt.Printf(" built %s", buildDate)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
