package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the acsctl version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("acsctl %s (%s)\n", version.Version, version.GitCommit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
