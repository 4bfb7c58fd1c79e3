package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var infoPartition string

var infoCmd = &cobra.Command{
	Use:   "info [image-path]",
	Short: "Show image and partition header details",
	Long: `Print the decoded header of every partition, or of a single one.

Examples:
  # Full image summary
  lkimg info lk.img

  # One partition
  lkimg info lk.img --partition lk`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoPartition, "partition", "p", "", "show a single partition")
}

func runInfo(imagePath string) error {
	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	fmt.Println(img)

	names := img.Partitions()
	if infoPartition != "" {
		names = []string{infoPartition}
	}

	for _, name := range names {
		p, err := img.GetPartition(name)
		if err != nil {
			return err
		}
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(p.Describe())
	}
	return nil
}
