package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "digiteria",
	Short: "Digiteria — digital goods marketplace",
	Long:  "Digiteria is a marketplace for digital goods. Use this CLI to run the server and manage the document store.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(storeSeedCmd)
	rootCmd.AddCommand(storeResetCmd)
	rootCmd.AddCommand(storeStatsCmd)
	rootCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
