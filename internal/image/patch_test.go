package image

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R0rt1z2/liblk/internal/types"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestApplyPatchWholeImage(t *testing.T) {
	needle := mustHex(t, "30b583b002ab")
	patch := mustHex(t, "00207047")

	payload := append([]byte("prefix--"), needle...)
	payload = append(payload, []byte("--suffix")...)

	img := emptyImage(t)
	_, err := img.AddPartition("lk", payload, nil)
	require.NoError(t, err)

	before := append([]byte(nil), img.Bytes()...)
	idx := bytes.Index(before, needle)
	require.GreaterOrEqual(t, idx, 0)

	require.NoError(t, img.ApplyPatchHex("30b583b002ab", "00207047", ""))

	after := img.Bytes()
	assert.Equal(t, patch, after[idx:idx+len(patch)])
	assert.Equal(t, before[:idx], after[:idx],
		"bytes before the window must be untouched")
	assert.Equal(t, before[idx+len(needle):], after[idx+len(patch):],
		"bytes after the window must be untouched")
	assert.Len(t, after, len(before)-len(needle)+len(patch))
}

func TestApplyPatchNeedleAbsent(t *testing.T) {
	img := emptyImage(t)
	_, err := img.AddPartition("lk", []byte("nothing to see here"), nil)
	require.NoError(t, err)

	lk, err := img.GetPartition("lk")
	require.NoError(t, err)
	before := append([]byte(nil), lk.Data...)

	err = img.ApplyPatchHex("DEADBEEFCAFEBABE", "00207047", "lk")
	assert.ErrorIs(t, err, types.ErrNeedleNotFound)
	assert.Equal(t, before, lk.Data, "a failed patch must leave the payload intact")
}

func TestApplyPatchUnknownPartition(t *testing.T) {
	img := emptyImage(t)
	err := img.ApplyPatch([]byte{0x00}, []byte{0x01}, "lk")
	assert.ErrorIs(t, err, types.ErrPartitionNotFound)
}

func TestApplyPatchPartitionIsolation(t *testing.T) {
	needle := []byte{0xAA, 0xBB, 0xCC}

	img := emptyImage(t)
	_, err := img.AddPartition("lk", append([]byte("aaa"), needle...), nil)
	require.NoError(t, err)
	_, err = img.AddPartition("tee", append([]byte("bbb"), needle...), nil)
	require.NoError(t, err)

	tee, err := img.GetPartition("tee")
	require.NoError(t, err)
	teeBefore := append([]byte(nil), tee.Data...)

	require.NoError(t, img.ApplyPatch(needle, []byte{0x11, 0x22, 0x33}, "lk"))

	lk, err := img.GetPartition("lk")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, lk.Data[3:])
	assert.Equal(t, teeBefore, tee.Data, "patching lk must never touch tee")
}

func TestApplyPatchSizeChangeNeedsRebuild(t *testing.T) {
	img := emptyImage(t)
	_, err := img.AddPartition("lk", []byte("0123456789"), nil)
	require.NoError(t, err)
	_, err = img.AddPartition("tee", []byte("tee-data"), nil)
	require.NoError(t, err)

	// Shrinking replacement: payload and header size update together,
	// the buffer stays stale until Rebuild.
	require.NoError(t, img.ApplyPatch([]byte("23456"), []byte("x"), "lk"))

	lk, err := img.GetPartition("lk")
	require.NoError(t, err)
	assert.Equal(t, []byte("01x789"), lk.Data)
	assert.Equal(t, uint64(6), lk.Header.DataSize(),
		"header size must follow the payload atomically")

	img.Rebuild()
	reparsed, err := NewFromBytes(img.Bytes(), nil)
	require.NoError(t, err)

	got, err := reparsed.GetPartition("lk")
	require.NoError(t, err)
	assert.Equal(t, []byte("01x789"), got.Data)
	tee, err := reparsed.GetPartition("tee")
	require.NoError(t, err)
	assert.Equal(t, []byte("tee-data"), tee.Data)
}

func TestApplyPatchHexRejectsBadHex(t *testing.T) {
	img := emptyImage(t)
	err := img.ApplyPatchHex("zz", "00", "")
	assert.Error(t, err)
}
