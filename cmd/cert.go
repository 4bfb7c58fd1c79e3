package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/liblk/internal/image"
)

var (
	certOutput string
	certType   string
)

var certCmd = &cobra.Command{
	Use:   "cert [image-path] [partition-name] [cert-file]",
	Short: "Attach a certificate to a partition",
	Long: `Attach a cert1 or cert2 sub-partition to an existing partition.

Example:
  lkimg cert lk.img lk cert1.der --cert-type cert1`,

	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCert(args[0], args[1], args[2]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(certCmd)

	certCmd.Flags().StringVarP(&certOutput, "output", "o", "", "output path (default: <image>_modified.img)")
	certCmd.Flags().StringVar(&certType, "cert-type", "cert1", "certificate type (cert1 or cert2)")
}

func runCert(imagePath, partitionName, certFile string) error {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return err
	}

	img, err := image.NewFromFile(imagePath, loadConfig())
	if err != nil {
		return err
	}

	cert, err := img.AddCertificate(partitionName, data, certType)
	if err != nil {
		return err
	}

	// Certificate attachment is two-phase: the buffer is only
	// regenerated here, right before saving.
	img.Rebuild()

	out := certOutput
	if out == "" {
		out = defaultOutputPath(imagePath)
	}
	if err := img.Save(out); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"certificate": cert.Name(),
		"partition":   partitionName,
		"size":        len(data),
		"output":      out,
	}).Info("certificate attached")
	return nil
}
