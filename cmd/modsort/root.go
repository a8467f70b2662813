package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "modsort",
	Short: "Classify Minecraft Forge mod JARs by deployment side",
	Long: "Modsort inspects the mods.toml and compiled code of each mod JAR in a\n" +
		"directory, classifies every mod as client-only, server-only, universal\n" +
		"or API/library, corrects single-side classifications against declared\n" +
		"dependencies, and writes a detailed report.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
