package types

import (
	"fmt"
	"strings"
)

// Header is the in-memory form of the fixed 512-byte partition header.
// Legacy and extended layouts share one structure; Extended is the
// discriminant and the composed accessors pick the right halves.
type Header struct {
	Magic        uint32
	DataSizeLow  uint32
	Name         string
	LoadAddrLow  uint32
	Mode         uint32
	ExtMagic     uint32
	HdrSize      uint32
	HdrVersion   uint32
	ImageType    ImageType
	ImageListEnd uint32
	Alignment    uint32
	DataSizeHigh uint32
	LoadAddrHigh uint32
}

// NewHeader builds a header for a fresh partition. The name is validated
// against the 32-byte field; extended headers get the canonical size,
// version, and alignment fields filled in.
func NewHeader(name string, dataSize uint64, loadAddr uint64, mode uint32, extended bool, alignment uint32) (*Header, error) {
	if len(name) > NameSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrNameTooLong, name, len(name))
	}
	h := &Header{
		Magic: Magic,
		Name:  name,
		Mode:  mode,
	}
	if extended {
		h.ExtMagic = ExtMagic
		h.HdrSize = HeaderSize
		h.HdrVersion = 1
		h.Alignment = alignment
	}
	h.SetDataSize(dataSize)
	h.SetLoadAddress(loadAddr)
	return h, nil
}

// IsValid reports whether the header carries the partition magic.
func (h *Header) IsValid() bool {
	return h.Magic == Magic
}

// IsExtended reports whether the extended sub-header fields are present.
func (h *Header) IsExtended() bool {
	return h.ExtMagic == ExtMagic
}

// DataSize composes the effective payload size from the low and, for
// extended headers, high halves.
func (h *Header) DataSize() uint64 {
	if h.IsExtended() {
		return uint64(h.DataSizeHigh)<<32 | uint64(h.DataSizeLow)
	}
	return uint64(h.DataSizeLow)
}

// SetDataSize splits the payload size back into its on-disk halves. The
// high half is only representable on extended headers.
func (h *Header) SetDataSize(size uint64) {
	h.DataSizeLow = uint32(size)
	if h.IsExtended() {
		h.DataSizeHigh = uint32(size >> 32)
	}
}

// LoadAddress composes the effective load address.
func (h *Header) LoadAddress() uint64 {
	if h.IsExtended() {
		return uint64(h.LoadAddrHigh)<<32 | uint64(h.LoadAddrLow)
	}
	return uint64(h.LoadAddrLow)
}

// SetLoadAddress splits the load address back into its on-disk halves.
func (h *Header) SetLoadAddress(addr uint64) {
	h.LoadAddrLow = uint32(addr)
	if h.IsExtended() {
		h.LoadAddrHigh = uint32(addr >> 32)
	}
}

// AddressingMode is the legacy signed view of the load address field.
func (h *Header) AddressingMode() AddressingMode {
	return AddressingMode(int32(h.LoadAddrLow))
}

// EffectiveSize is the number of bytes the header occupies on disk:
// always 512 for legacy headers, the self-declared size for extended
// ones.
func (h *Header) EffectiveSize() int {
	if h.IsExtended() && h.HdrSize > 0 {
		return int(h.HdrSize)
	}
	return HeaderSize
}

// EffectiveAlignment is the payload alignment in force for this
// partition. Zero means no padding.
func (h *Header) EffectiveAlignment() uint32 {
	if h.IsExtended() {
		return h.Alignment
	}
	return LegacyAlignment
}

// Describe renders the header the way the list command prints it.
func (h *Header) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Partition Name  : %s\n", h.Name)
	fmt.Fprintf(&b, "Data Size       : %d bytes\n", h.DataSize())
	fmt.Fprintf(&b, "Addressing Mode : %s\n", h.AddressingMode())
	fmt.Fprintf(&b, "Memory Address  : 0x%08x", h.LoadAddress())
	if h.IsExtended() {
		fmt.Fprintf(&b, "\nHeader Size     : %d bytes", h.HdrSize)
		fmt.Fprintf(&b, "\nHeader Version  : %d", h.HdrVersion)
		fmt.Fprintf(&b, "\nImage Type      : %s", h.ImageType)
		fmt.Fprintf(&b, "\nImage List End  : %t", h.ImageListEnd == 1)
		fmt.Fprintf(&b, "\nAlignment       : %d bytes", h.Alignment)
	}
	return b.String()
}
