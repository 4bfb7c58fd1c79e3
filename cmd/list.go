package cmd

import (
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var listShowCerts bool

var listCmd = &cobra.Command{
	Use:   "list [image-path]",
	Short: "List partitions, sizes, and certificates",
	Long: `List the partitions of an LK image in stream order.

Examples:
  # List partitions
  lkimg list lk.img

  # Include certificate sub-partitions
  lkimg list lk.img --certs`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listShowCerts, "certs", false, "list certificate sub-partitions")
}

func runList(imagePath string) error {
	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"partitions": img.Len(),
		"version":    img.Version(),
		"size":       len(img.Bytes()),
	}).Debug("image loaded")

	fmt.Println(strings.Repeat("-", 50))
	for i, name := range img.Partitions() {
		p, err := img.GetPartition(name)
		if err != nil {
			return err
		}
		certsInfo := ""
		if len(p.Certs) > 0 {
			certsInfo = fmt.Sprintf(" (%d certs)", len(p.Certs))
		}
		fmt.Printf("%2d. %-20s %8d bytes%s\n", i+1, name, p.Size(), certsInfo)

		if listShowCerts {
			for _, c := range p.Certs {
				fmt.Printf("    └── %-16s %8d bytes\n", c.Name(), c.Size())
			}
		}
	}
	fmt.Println(strings.Repeat("-", 50))
	return nil
}
