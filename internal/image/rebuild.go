package image

import (
	"github.com/R0rt1z2/liblk/internal/parsers/header"
	"github.com/R0rt1z2/liblk/internal/types"
)

// Rebuild regenerates the raw buffer from the partition collection:
// normalizes the image_list_end flags so exactly one trailing unit
// carries it, serializes every partition followed by its certificates,
// and records the new end offsets. Idempotent for an unchanged
// collection.
func (img *LkImage) Rebuild() {
	for _, e := range img.entries {
		e.part.Header.ImageListEnd = 0
		for _, cert := range e.part.Certs {
			cert.Header.ImageListEnd = 0
		}
	}

	if n := len(img.entries); n > 0 {
		last := img.entries[n-1].part
		unit := last
		if len(last.Certs) > 0 {
			unit = last.Certs[len(last.Certs)-1]
		}
		unit.Header.ImageListEnd = 1
	}

	var buf []byte
	for _, e := range img.entries {
		buf = append(buf, serializePartition(e.part)...)
		for _, cert := range e.part.Certs {
			buf = append(buf, serializePartition(cert)...)
		}
		e.part.EndOffset = len(buf)
	}

	img.contents = buf
}

// serializePartition emits one partition: its header truncated to the
// effective on-disk length, the payload, and zero padding up to the
// partition's alignment.
func serializePartition(p *types.Partition) []byte {
	hdr := header.Encode(p.Header)

	hdrSize := p.Header.EffectiveSize()
	if hdrSize > len(hdr) {
		hdrSize = len(hdr)
	}

	out := make([]byte, 0, hdrSize+len(p.Data))
	out = append(out, hdr[:hdrSize]...)
	out = append(out, p.Data...)
	return types.Pad(out, p.Header.EffectiveAlignment())
}
