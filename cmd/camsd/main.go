package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "camsd",
	Short: "Consultancy activity management server",
	Long:  `camsd records and serves college consultancy project data: faculty accounts, project submissions with documents, filtered exports and periodic notifications.`,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
