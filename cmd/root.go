package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "intraday-levels",
	Short: "Intraday level derivation and trade directive engine",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(evaluateCmd)
}
