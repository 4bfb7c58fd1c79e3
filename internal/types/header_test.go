package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSizeComposition(t *testing.T) {
	h, err := NewHeader("lk", 0, 0, 0, true, 8)
	require.NoError(t, err)

	h.SetDataSize(0x1_0000_0008)
	assert.Equal(t, uint32(8), h.DataSizeLow)
	assert.Equal(t, uint32(1), h.DataSizeHigh)
	assert.Equal(t, uint64(0x1_0000_0008), h.DataSize())
}

func TestLegacyHeaderTruncatesHighHalf(t *testing.T) {
	h, err := NewHeader("lk", 0, 0, 0, false, 8)
	require.NoError(t, err)

	h.SetDataSize(0x1_0000_0008)
	assert.Equal(t, uint64(8), h.DataSize(),
		"legacy headers only carry the low 32 bits")
}

func TestAddressingMode(t *testing.T) {
	h := &Header{LoadAddrLow: 0xFFFFFFFF}
	assert.Equal(t, AddressingModeNormal, h.AddressingMode())

	h.LoadAddrLow = 0
	assert.Equal(t, AddressingModeBackward, h.AddressingMode())
}

func TestImageTypeRoundTrip(t *testing.T) {
	it := ImageType{Group: GroupCert, ID: Cert1MD}
	assert.Equal(t, it, ImageTypeFromUint32(it.Uint32()))
	assert.Equal(t, "ImageType(group=CERT, id=CERT1_MD)", it.String())
}

func TestSetPayloadAtomic(t *testing.T) {
	h, err := NewHeader("lk", 4, 0, 0, false, 8)
	require.NoError(t, err)
	p := &Partition{Header: h, Data: make([]byte, 4)}

	p.SetPayload(make([]byte, 100))
	assert.Equal(t, 100, p.Size())
	assert.Equal(t, uint64(100), h.DataSize())
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 520, AlignUp(517, 8))
	assert.Equal(t, 512, AlignUp(512, 8))
	assert.Equal(t, 517, AlignUp(517, 0), "zero alignment means no padding")
}
