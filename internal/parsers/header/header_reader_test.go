package header

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R0rt1z2/liblk/internal/types"
)

// buildExtendedHeader synthesizes the 512-byte block used across the
// decode tests: an extended header with 64-bit size/address halves.
func buildExtendedHeader() []byte {
	data := make([]byte, types.HeaderSize)
	le := binary.LittleEndian

	le.PutUint32(data[0:], types.Magic)
	le.PutUint32(data[4:], 8) // data size low
	copy(data[8:], "test")
	le.PutUint32(data[40:], 0xDEADBEEF) // load address low
	le.PutUint32(data[44:], 474)        // mode
	le.PutUint32(data[48:], types.ExtMagic)
	le.PutUint32(data[52:], types.HeaderSize) // header size
	le.PutUint32(data[56:], 1)                // header version
	le.PutUint32(data[60:], types.ImageType{Group: types.GroupCert, ID: types.Cert2}.Uint32())
	le.PutUint32(data[64:], 0)          // image list end
	le.PutUint32(data[68:], 8)          // alignment
	le.PutUint32(data[72:], 0)          // data size high
	le.PutUint32(data[76:], 0xBEEFDEED) // load address high

	return data
}

func TestDecodeExtendedHeader(t *testing.T) {
	h, err := Decode(buildExtendedHeader())
	require.NoError(t, err)

	assert.True(t, h.IsValid(), "magic should validate")
	assert.True(t, h.IsExtended(), "ext magic should mark the header extended")
	assert.Equal(t, "test", h.Name)
	assert.Equal(t, uint32(474), h.Mode)
	assert.Equal(t, uint64(8), h.DataSize())
	assert.Equal(t, uint64(0xBEEFDEEDDEADBEEF), h.LoadAddress(),
		"load address should compose high and low halves")
	assert.Equal(t, types.GroupCert, h.ImageType.Group)
	assert.Equal(t, types.Cert2, h.ImageType.ID)
	assert.Equal(t, types.HeaderSize, h.EffectiveSize())
	assert.Equal(t, uint32(8), h.EffectiveAlignment())
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := buildExtendedHeader()

	h, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, Encode(h), "re-encoding should reproduce the original block")
}

func TestDecodeLegacyHeader(t *testing.T) {
	data := make([]byte, types.HeaderSize)
	le := binary.LittleEndian
	le.PutUint32(data[0:], types.Magic)
	le.PutUint32(data[4:], 4096)
	copy(data[8:], "lk")
	le.PutUint32(data[40:], 0x48000000)

	h, err := Decode(data)
	require.NoError(t, err)

	assert.False(t, h.IsExtended())
	assert.Equal(t, uint64(4096), h.DataSize())
	assert.Equal(t, uint64(0x48000000), h.LoadAddress())
	assert.Equal(t, types.HeaderSize, h.EffectiveSize())
	assert.Equal(t, uint32(types.LegacyAlignment), h.EffectiveAlignment(),
		"legacy headers imply 8-byte alignment")
}

func TestDecodeBadMagicIsNotAnError(t *testing.T) {
	data := make([]byte, types.HeaderSize)
	binary.LittleEndian.PutUint32(data[0:], 0x11223344)

	h, err := Decode(data)
	require.NoError(t, err, "decode reports malformed fields, validity is the caller's call")
	assert.False(t, h.IsValid())
}

func TestDecodeShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, types.HeaderSize-1))
	assert.ErrorIs(t, err, types.ErrInvalidHeader)
}

func TestNewHeaderRejectsLongName(t *testing.T) {
	_, err := types.NewHeader("this_partition_name_is_well_over_32_bytes", 0, 0, 0, false, 8)
	assert.ErrorIs(t, err, types.ErrNameTooLong)
}

func TestNamePaddingRoundTrip(t *testing.T) {
	h, err := types.NewHeader("lk", 0, 0, 0, true, 8)
	require.NoError(t, err)

	decoded, err := Decode(Encode(h))
	require.NoError(t, err)
	assert.Equal(t, "lk", decoded.Name, "trailing NUL padding should be stripped")
}
