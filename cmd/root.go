// Package cmd implements the lkimg command-line interface.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/config"
)

var (
	// Global output flags only
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "lkimg",
	Short: "Inspect and modify MediaTek LK bootloader images",
	Long: `lkimg parses, edits, and re-serializes MediaTek LK (Little Kernel)
bootloader images: list and dump partitions, add or remove partitions,
attach signing certificates, and apply binary patches.

Commands:
  list      List partitions, sizes, and certificates
  info      Show image and partition header details
  add       Add a partition from a file
  remove    Remove a partition
  cert      Attach a certificate to a partition
  patch     Apply a binary patch (hex needle/replacement)
  extract   Dump partition payloads to disk`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(clihandler.New(os.Stderr))
		switch {
		case quiet:
			log.SetLevel(log.ErrorLevel)
		case verbose:
			log.SetLevel(log.DebugLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
}

// loadConfig loads the tool configuration for a command run.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("falling back to default configuration")
		return config.Default()
	}
	return cfg
}

// defaultOutputPath derives the output file for mutating commands when
// no --output flag is given.
func defaultOutputPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_modified.img"
}
