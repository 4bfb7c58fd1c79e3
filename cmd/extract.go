package cmd

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var (
	extractDest  string
	extractCerts bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [image-path] [partition-name...]",
	Short: "Dump partition payloads to disk",
	Long: `Write partition payloads as individual files.

Examples:
  # Dump every partition
  lkimg extract lk.img -d ./partitions

  # Dump specific partitions, certificates included
  lkimg extract lk.img lk lk_main_dtb --certs`,

	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExtract(args[0], args[1:]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "destination directory (default from config)")
	extractCmd.Flags().BoolVar(&extractCerts, "certs", false, "also dump certificate payloads")
}

func runExtract(imagePath string, names []string) error {
	cfg := loadConfig()

	img, err := image.NewFromFile(imagePath, cfg)
	if err != nil {
		return err
	}

	dest := extractDest
	if dest == "" {
		dest = cfg.Extract.OutputDir
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	if len(names) == 0 {
		names = img.Partitions()
	}

	for _, name := range names {
		p, err := img.GetPartition(name)
		if err != nil {
			return err
		}

		out := filepath.Join(dest, name+".bin")
		if err := os.WriteFile(out, p.Data, 0o644); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"partition": name,
			"size":      p.Size(),
			"file":      out,
		}).Info("partition dumped")

		if !extractCerts {
			continue
		}
		for _, c := range p.Certs {
			out := filepath.Join(dest, name+"_"+c.Name()+".bin")
			if err := os.WriteFile(out, c.Data, 0o644); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"certificate": c.Name(),
				"file":        out,
			}).Info("certificate dumped")
		}
	}
	return nil
}
