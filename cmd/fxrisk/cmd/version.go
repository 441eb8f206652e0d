package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrisk/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxrisk version %s\n", server.Version)
		fmt.Println("Forward rate and P&L analytics for fixed-rate trade-finance contracts")
		fmt.Println("https://github.com/rustyeddy/fxrisk")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
