// Package partition parses single LK partitions out of an image stream.
package partition

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/R0rt1z2/liblk/internal/parsers/header"
	"github.com/R0rt1z2/liblk/internal/types"
)

// Read parses the partition at the start of window. The window is the
// image buffer sliced at the partition's absolute offset; offset is that
// absolute position, used to compute the partition's end offset in the
// whole stream.
//
// Images produced by some download agents carry a 0x4040-byte stub in
// front of the first header; when the window opens with the "BFBF"
// marker the header is read past the stub. Payload extraction is always
// relative to the window itself, matching the on-disk layout.
func Read(window []byte, offset int) (*types.Partition, error) {
	shift := 0
	if bytes.HasPrefix(window, types.ShiftedMarker) {
		shift = types.ShiftedHeaderOffset
	}
	if len(window) < shift+types.HeaderSize {
		return nil, fmt.Errorf("%w: truncated header at offset 0x%x",
			types.ErrInvalidPartition, offset)
	}

	hdr, err := header.Decode(window[shift:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidPartition, err)
	}
	if !hdr.IsValid() {
		return nil, fmt.Errorf("%w: invalid magic 0x%x at offset 0x%x",
			types.ErrInvalidPartition, hdr.Magic, offset)
	}

	// Size fields come straight off disk; compare in unsigned 64-bit
	// space so a corrupt high half cannot wrap the bounds check.
	dataSize64 := hdr.DataSize()
	hdrSize := hdr.EffectiveSize()

	if hdrSize > len(window) || dataSize64 > uint64(len(window)-hdrSize) {
		return nil, fmt.Errorf("%w: partition %q overruns image (header %d + data %d bytes, %d available)",
			types.ErrInvalidPartition, hdr.Name, hdrSize, dataSize64, len(window))
	}
	dataSize := int(dataSize64)

	end := types.AlignUp(offset+hdrSize+dataSize, hdr.EffectiveAlignment())

	p := &types.Partition{
		Header:    hdr,
		Data:      window[hdrSize : hdrSize+dataSize],
		EndOffset: end,
	}
	return p, nil
}

// RecoverLoadAddress scans image for the load address embedded as an
// instruction operand and records it on the partition. Used for the lk
// partition when its header holds the 0xFFFFFFFF placeholder left by the
// build toolchain. Returns false when the pattern is absent.
func RecoverLoadAddress(p *types.Partition, image []byte) bool {
	idx := bytes.Index(image, types.LoadAddrPattern)
	if idx < 0 || idx+types.LoadAddrOffset+4 > len(image) {
		return false
	}
	addr := binary.LittleEndian.Uint32(image[idx+types.LoadAddrOffset:])
	p.ResolveLoadAddress(uint64(addr))
	return true
}
