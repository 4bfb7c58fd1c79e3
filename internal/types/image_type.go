package types

import "fmt"

// ImageGroup classifies what subsystem a partition image belongs to.
type ImageGroup uint8

const (
	// GroupAP marks application processor images.
	GroupAP ImageGroup = 0x0

	// GroupMD marks modem images.
	GroupMD ImageGroup = 0x1

	// GroupCert marks certificate images.
	GroupCert ImageGroup = 0x2
)

// String returns the group name.
func (g ImageGroup) String() string {
	switch g {
	case GroupAP:
		return "AP"
	case GroupMD:
		return "MD"
	case GroupCert:
		return "CERT"
	default:
		return fmt.Sprintf("GROUP(0x%x)", uint8(g))
	}
}

// Image IDs within GroupAP.
const (
	APBin uint8 = 0x0
)

// Image IDs within GroupMD.
const (
	MDLTE uint8 = 0x0
	MDC2K uint8 = 0x1
)

// Image IDs within GroupCert.
const (
	Cert1   uint8 = 0x0
	Cert1MD uint8 = 0x1
	Cert2   uint8 = 0x2
)

// ImageType is the image_type field of an extended header: an ID byte,
// two reserved bytes, and a group byte, packed little-endian into one
// 32-bit word (ID in the low byte, group in the high byte).
type ImageType struct {
	ID    uint8
	Group ImageGroup
}

// ImageTypeFromUint32 unpacks the on-disk image_type word.
func ImageTypeFromUint32(v uint32) ImageType {
	return ImageType{
		ID:    uint8(v),
		Group: ImageGroup(v >> 24),
	}
}

// Uint32 packs the image type back into its on-disk word. The reserved
// middle bytes are always zero.
func (t ImageType) Uint32() uint32 {
	return uint32(t.ID) | uint32(t.Group)<<24
}

// String returns a human-readable image type description.
func (t ImageType) String() string {
	return fmt.Sprintf("ImageType(group=%s, id=%s)", t.Group, t.idName())
}

func (t ImageType) idName() string {
	switch t.Group {
	case GroupAP:
		if t.ID == APBin {
			return "AP_BIN"
		}
	case GroupMD:
		switch t.ID {
		case MDLTE:
			return "MD_LTE"
		case MDC2K:
			return "MD_C2K"
		}
	case GroupCert:
		switch t.ID {
		case Cert1:
			return "CERT1"
		case Cert1MD:
			return "CERT1_MD"
		case Cert2:
			return "CERT2"
		}
	}
	return fmt.Sprintf("ID(0x%x)", t.ID)
}
