// Package header decodes and encodes the fixed 512-byte LK partition
// header, covering both the legacy layout and the extended sub-header.
package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/R0rt1z2/liblk/internal/types"
)

// Field offsets inside the 512-byte header block.
const (
	offMagic        = 0
	offDataSizeLow  = 4
	offName         = 8
	offLoadAddrLow  = 40
	offMode         = 44
	offExtMagic     = 48
	offHdrSize      = 52
	offHdrVersion   = 56
	offImageType    = 60
	offImageListEnd = 64
	offAlignment    = 68
	offDataSizeHigh = 72
	offLoadAddrHigh = 76
)

// Decode reads one header from the start of data. It fails only when the
// 512-byte window cannot be read; a wrong magic is not an error here so
// callers can still inspect the malformed fields for diagnostics.
func Decode(data []byte) (*types.Header, error) {
	if len(data) < types.HeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes, have %d",
			types.ErrInvalidHeader, types.HeaderSize, len(data))
	}

	le := binary.LittleEndian
	h := &types.Header{
		Magic:       le.Uint32(data[offMagic:]),
		DataSizeLow: le.Uint32(data[offDataSizeLow:]),
		Name:        decodeName(data[offName : offName+types.NameSize]),
		LoadAddrLow: le.Uint32(data[offLoadAddrLow:]),
		Mode:        le.Uint32(data[offMode:]),
		ExtMagic:    le.Uint32(data[offExtMagic:]),
	}

	if h.IsExtended() {
		h.HdrSize = le.Uint32(data[offHdrSize:])
		h.HdrVersion = le.Uint32(data[offHdrVersion:])
		h.ImageType = types.ImageTypeFromUint32(le.Uint32(data[offImageType:]))
		h.ImageListEnd = le.Uint32(data[offImageListEnd:])
		h.Alignment = le.Uint32(data[offAlignment:])
		h.DataSizeHigh = le.Uint32(data[offDataSizeHigh:])
		h.LoadAddrHigh = le.Uint32(data[offLoadAddrHigh:])
	}

	return h, nil
}

// Encode serializes the header into its full 512-byte block. Reserved
// bytes are zero-filled; writers truncate to EffectiveSize when the
// extended header declares a shorter one.
func Encode(h *types.Header) []byte {
	buf := make([]byte, types.HeaderSize)
	le := binary.LittleEndian

	le.PutUint32(buf[offMagic:], h.Magic)
	le.PutUint32(buf[offDataSizeLow:], h.DataSizeLow)
	copy(buf[offName:offName+types.NameSize], h.Name)
	le.PutUint32(buf[offLoadAddrLow:], h.LoadAddrLow)
	le.PutUint32(buf[offMode:], h.Mode)
	le.PutUint32(buf[offExtMagic:], h.ExtMagic)

	if h.IsExtended() {
		le.PutUint32(buf[offHdrSize:], h.HdrSize)
		le.PutUint32(buf[offHdrVersion:], h.HdrVersion)
		le.PutUint32(buf[offImageType:], h.ImageType.Uint32())
		le.PutUint32(buf[offImageListEnd:], h.ImageListEnd)
		le.PutUint32(buf[offAlignment:], h.Alignment)
		le.PutUint32(buf[offDataSizeHigh:], h.DataSizeHigh)
		le.PutUint32(buf[offLoadAddrHigh:], h.LoadAddrHigh)
	}

	return buf
}

// decodeName strips the NUL padding from the fixed-width name field.
func decodeName(field []byte) string {
	return string(bytes.TrimRight(field, "\x00"))
}
