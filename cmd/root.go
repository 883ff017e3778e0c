package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "userrank",
	Short: "User ranking service",
	Long:  "REST service storing users and their scores, with score-based ranking.",
}

func Execute() error {
	return rootCmd.Execute()
}
