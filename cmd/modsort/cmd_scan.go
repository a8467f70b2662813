package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"modsort/internal/archive"
	"modsort/internal/collect"
	"modsort/internal/correct"
	"modsort/internal/model"
	"modsort/internal/report"
)

const defaultLogName = "mod_classification_log.txt"

var scanFlags struct {
	copyTo  string
	out     string
	jsonOut string
	verbose bool
}

var scanCmd = &cobra.Command{
	Use:   "scan <mods-dir>",
	Short: "Analyze and classify the mod JARs in a directory",
	Long: `Scan every *.jar in the given directory, classify each mod by
deployment side and write a classification log.

Usage:
  modsort scan ./mods                         # analyze, log next to cwd
  modsort scan ./mods --copy-to ./sorted      # also archive JARs by category

With --copy-to, the JARs are copied into one folder per category
(1_Client_Side ... 5_Errors) and the log is placed in that directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVarP(&scanFlags.copyTo, "copy-to", "c", "", "Copy classified JARs into this directory, one folder per category")
	f.StringVarP(&scanFlags.out, "out", "o", "", "Log file path (default: "+defaultLogName+", or inside --copy-to)")
	f.StringVar(&scanFlags.jsonOut, "json", "", "Also write a JSON report to this path")
	f.BoolVarP(&scanFlags.verbose, "verbose", "v", false, "Enable debug logging")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "modsort"})
	if scanFlags.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	modsDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid mods directory: %w", err)
	}
	info, err := os.Stat(modsDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is not a valid directory", args[0])
	}

	logPath := scanFlags.out
	if logPath == "" {
		if scanFlags.copyTo != "" {
			logPath = filepath.Join(scanFlags.copyTo, defaultLogName)
		} else {
			logPath = defaultLogName
		}
	}

	rule := strings.Repeat("=", 80)
	fmt.Println(rule)
	fmt.Printf("[*] Scanning directory: %s\n", modsDir)
	if scanFlags.copyTo != "" {
		fmt.Printf("[*] Files will be archived to: %s\n", scanFlags.copyTo)
	}
	fmt.Printf("[*] Report will be written to: %s\n", logPath)
	fmt.Println(rule)

	fmt.Println("[phase 1] Collecting mod info and running initial classification...")
	res, err := collect.Run(modsDir)
	if err != nil {
		return err
	}
	fmt.Printf("[phase 1] Done, analyzed %d files.\n\n", len(res.Order))

	fmt.Println("[phase 2] Correcting classifications against dependencies...")
	corrections := correct.Apply(res.Order, res.Records, res.Index)
	fmt.Printf("[phase 2] Done, made %d corrections.\n\n", corrections)

	records := make([]*model.ModRecord, 0, len(res.Order))
	for _, filename := range res.Order {
		records = append(records, res.Records[filename])
	}

	if scanFlags.copyTo != "" {
		fmt.Println("[phase 3] Archiving mod files...")
		copied, err := archive.Copy(modsDir, scanFlags.copyTo, records, logger)
		if err != nil {
			return err
		}
		fmt.Printf("[phase 3] Done, archived %d files.\n\n", copied)
	}

	meta := report.Meta{ScannedDir: modsDir, Timestamp: time.Now()}
	if err := report.WriteLog(logPath, meta, records); err != nil {
		return fmt.Errorf("write report to '%s': %w", logPath, err)
	}
	if scanFlags.jsonOut != "" {
		if err := report.WriteJSON(scanFlags.jsonOut, meta, records, corrections); err != nil {
			return fmt.Errorf("write JSON report to '%s': %w", scanFlags.jsonOut, err)
		}
	}

	fmt.Println(rule)
	fmt.Println("[*] Analysis complete. Detailed report written to:")
	fmt.Printf("    %s\n", logPath)
	fmt.Println(rule)
	return nil
}
