package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var (
	addOutput  string
	addAddress uint64
	addLegacy  bool
	addPos     int
)

var addCmd = &cobra.Command{
	Use:   "add [image-path] [partition-name] [data-file]",
	Short: "Add a partition from a file",
	Long: `Insert a new partition into an LK image and write the modified image.

Examples:
  # Append a partition
  lkimg add lk.img logo logo.bin -a 0x41000000

  # Insert before everything else, legacy header
  lkimg add lk.img loader loader.bin --legacy --position 0`,

	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdd(args[0], args[1], args[2]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addOutput, "output", "o", "", "output path (default: <image>_modified.img)")
	addCmd.Flags().Uint64VarP(&addAddress, "address", "a", 0, "partition load address")
	addCmd.Flags().BoolVar(&addLegacy, "legacy", false, "use the legacy header format")
	addCmd.Flags().IntVar(&addPos, "position", -1, "insert position (default: append)")
}

func runAdd(imagePath, name, dataFile string) error {
	data, err := os.ReadFile(dataFile)
	if err != nil {
		return err
	}

	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	opts := &image.AddOptions{Address: addAddress}
	if addLegacy {
		legacy := false
		opts.Extended = &legacy
	}
	if addPos >= 0 {
		opts.Position = &addPos
	}

	if _, err := img.AddPartition(name, data, opts); err != nil {
		return err
	}

	out := addOutput
	if out == "" {
		out = defaultOutputPath(imagePath)
	}
	if err := img.Save(out); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"partition": name,
		"size":      len(data),
		"output":    out,
	}).Info("partition added")
	return nil
}
