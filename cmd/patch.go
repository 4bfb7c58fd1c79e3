package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var (
	patchOutput    string
	patchPartition string
)

var patchCmd = &cobra.Command{
	Use:   "patch [image-path] [needle-hex] [patch-hex]",
	Short: "Apply a binary patch",
	Long: `Replace the first occurrence of a byte sequence with another.

Examples:
  # Disable the dm-verity warning (return 0 from the display function)
  lkimg patch lk.img 30b583b002ab 00207047

  # Restrict the search to one partition's payload
  lkimg patch lk.img 30b583b002ab 00207047 -p lk`,

	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPatch(args[0], args[1], args[2]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)

	patchCmd.Flags().StringVarP(&patchOutput, "output", "o", "", "output path (default: <image>_modified.img)")
	patchCmd.Flags().StringVarP(&patchPartition, "partition", "p", "", "limit the search to one partition")
}

func runPatch(imagePath, needleHex, patchHex string) error {
	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	if err := img.ApplyPatchHex(needleHex, patchHex, patchPartition); err != nil {
		return err
	}

	// A partition-scoped patch may change the payload size; the buffer
	// has to be regenerated before it is written back.
	if patchPartition != "" {
		img.Rebuild()
	}

	out := patchOutput
	if out == "" {
		out = defaultOutputPath(imagePath)
	}
	if err := img.Save(out); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"needle": needleHex,
		"output": out,
	}).Info("patch applied")
	return nil
}
