package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var removeOutput string

var removeCmd = &cobra.Command{
	Use:   "remove [image-path] [partition-name]",
	Short: "Remove a partition",
	Long: `Remove a partition (and its certificates) from an LK image.

Example:
  lkimg remove lk.img logo -o lk_nologo.img`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRemove(args[0], args[1]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVarP(&removeOutput, "output", "o", "", "output path (default: <image>_modified.img)")
}

func runRemove(imagePath, name string) error {
	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	if err := img.RemovePartition(name); err != nil {
		return err
	}

	out := removeOutput
	if out == "" {
		out = defaultOutputPath(imagePath)
	}
	if err := img.Save(out); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"partition": name,
		"output":    out,
	}).Info("partition removed")
	return nil
}
