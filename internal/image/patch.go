package image

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/R0rt1z2/liblk/internal/types"
)

// ApplyPatch replaces the first occurrence of needle with patch. With an
// empty partitionName the raw image buffer is patched in place;
// otherwise only the named partition's payload is searched.
//
// The needle and patch lengths may differ. A size-changing patch on a
// partition updates that partition's header but not the surrounding
// buffer: the caller must Rebuild before relying on Bytes.
//
// A size-changing whole-image patch shifts every byte after the
// replaced window, subsequent partition headers included; the
// structured partition view only reflects it after the buffer is
// parsed again. Rebuild regenerates the buffer from the partition
// payloads and discards raw-buffer edits, so do not mix whole-image
// patching with collection mutations on the same image.
func (img *LkImage) ApplyPatch(needle, patch []byte, partitionName string) error {
	if partitionName == "" {
		idx := bytes.Index(img.contents, needle)
		if idx < 0 {
			return fmt.Errorf("%w: %x", types.ErrNeedleNotFound, needle)
		}
		img.contents = splice(img.contents, idx, len(needle), patch)
		return nil
	}

	p, ok := img.lookup(partitionName)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPartitionNotFound, partitionName)
	}

	idx := bytes.Index(p.Data, needle)
	if idx < 0 {
		return fmt.Errorf("%w: %x in partition %s", types.ErrNeedleNotFound, needle, partitionName)
	}
	p.SetPayload(splice(p.Data, idx, len(needle), patch))
	return nil
}

// ApplyPatchHex is ApplyPatch for hex-encoded needle and patch strings,
// the form the CLI and scripts pass around.
func (img *LkImage) ApplyPatchHex(needleHex, patchHex, partitionName string) error {
	needle, err := hex.DecodeString(needleHex)
	if err != nil {
		return fmt.Errorf("invalid needle hex: %w", err)
	}
	patch, err := hex.DecodeString(patchHex)
	if err != nil {
		return fmt.Errorf("invalid patch hex: %w", err)
	}
	return img.ApplyPatch(needle, patch, partitionName)
}

// splice returns a new slice with n bytes at idx replaced by repl. The
// input is never mutated, so payload slices that alias the original
// image buffer stay intact.
func splice(buf []byte, idx, n int, repl []byte) []byte {
	out := make([]byte, 0, len(buf)-n+len(repl))
	out = append(out, buf[:idx]...)
	out = append(out, repl...)
	out = append(out, buf[idx+n:]...)
	return out
}
