// Package types implements the on-disk data structures of the MediaTek
// LK (Little Kernel) bootloader image format.
package types

// Magic identifies a partition header. Every partition in an LK image
// starts with this value; it is the only validity signal the format has.
const Magic uint32 = 0x58881688

// ExtMagic identifies the extended sub-header. When the ext_magic field
// of a header equals this value, the 64-bit size/address extension fields
// are present.
const ExtMagic uint32 = 0x58891689

// HeaderSize is the fixed on-disk size of a partition header. Legacy
// headers occupy exactly this many bytes; extended headers declare their
// own effective size but are laid out inside the same 512-byte template.
const HeaderSize = 512

// NameSize is the fixed width of the partition name field.
const NameSize = 32

// LegacyAlignment is the payload alignment used when no extended header
// is present to declare one.
const LegacyAlignment = 8

// UnresolvedLoadAddr is the placeholder the build toolchain emits for the
// lk partition's load address. The real address must be recovered from
// the payload (see LoadAddrPattern).
const UnresolvedLoadAddr uint32 = 0xFFFFFFFF

// LoadAddrPattern is the instruction pattern (ARM "bx lr" encoding) that
// precedes the embedded load address. The recovered address is the
// little-endian word 8 bytes past the first occurrence of this pattern.
var LoadAddrPattern = []byte{0x10, 0xFF, 0x2F, 0xE1}

// LoadAddrOffset is the distance from the start of a LoadAddrPattern
// match to the embedded load address word.
const LoadAddrOffset = 8

// ShiftedMarker marks images whose first partition header lives at
// ShiftedHeaderOffset instead of 0. Some platform download agents
// prepend a 0x4040-byte preloader stub starting with these bytes.
var ShiftedMarker = []byte{'B', 'F', 'B', 'F'}

// ShiftedHeaderOffset is where the first header sits in a shifted image.
const ShiftedHeaderOffset = 0x4040

// CertPrefix marks certificate partitions. A partition whose name starts
// with this prefix belongs to the closest preceding non-certificate
// partition in the stream.
const CertPrefix = "cert"

// AddressingMode is the signed reinterpretation of the legacy load
// address field.
type AddressingMode int32

const (
	// AddressingModeNormal means the load address is absolute.
	AddressingModeNormal AddressingMode = -1

	// AddressingModeBackward means the partition is loaded backwards
	// from the end of RAM.
	AddressingModeBackward AddressingMode = 0
)

// String returns a human-readable addressing mode name.
func (m AddressingMode) String() string {
	switch m {
	case AddressingModeNormal:
		return "NORMAL"
	case AddressingModeBackward:
		return "BACKWARD"
	default:
		return "UNKNOWN"
	}
}
