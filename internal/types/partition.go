package types

import (
	"bytes"
	"fmt"
)

// Partition is one payload unit of an LK image: a header, the raw
// payload, and any certificate sub-partitions that follow it in the
// stream. EndOffset is the absolute offset of the next partition in the
// stream the partition was parsed from or rebuilt into.
type Partition struct {
	Header    *Header
	Data      []byte
	Certs     []*Partition
	EndOffset int

	// resolvedAddr holds the load address recovered from the payload
	// when the header carries the 0xFFFFFFFF placeholder. The header
	// itself is left untouched so re-serialization stays byte-exact.
	resolvedAddr uint64
	addrResolved bool
}

// Name returns the partition name from the header.
func (p *Partition) Name() string {
	return p.Header.Name
}

// Size returns the payload size in bytes.
func (p *Partition) Size() int {
	return len(p.Data)
}

// SetPayload replaces the payload and updates the header's data size in
// the same step so the two can never desynchronize.
func (p *Partition) SetPayload(data []byte) {
	p.Data = data
	p.Header.SetDataSize(uint64(len(data)))
}

// LoadAddress returns the effective load address, preferring a recovered
// address over the header's placeholder.
func (p *Partition) LoadAddress() uint64 {
	if p.addrResolved {
		return p.resolvedAddr
	}
	return p.Header.LoadAddress()
}

// ResolveLoadAddress records a load address recovered from the payload.
func (p *Partition) ResolveLoadAddress(addr uint64) {
	p.resolvedAddr = addr
	p.addrResolved = true
}

// LoadAddressResolved reports whether the placeholder address was
// recovered.
func (p *Partition) LoadAddressResolved() bool {
	return p.addrResolved
}

// HasCert reports whether the partition carries a certificate whose name
// starts with certType. An empty certType matches any certificate.
func (p *Partition) HasCert(certType string) bool {
	if certType == "" {
		return len(p.Certs) > 0
	}
	for _, c := range p.Certs {
		if len(c.Header.Name) >= len(certType) && c.Header.Name[:len(certType)] == certType {
			return true
		}
	}
	return false
}

// Describe renders the partition's header, followed by its certificate
// count when it has any.
func (p *Partition) Describe() string {
	s := p.Header.Describe()
	if p.addrResolved {
		s += fmt.Sprintf("\nResolved Address: 0x%08x", p.resolvedAddr)
	}
	if len(p.Certs) > 0 {
		s += fmt.Sprintf("\nCertificates    : %d", len(p.Certs))
	}
	return s
}

// Pad appends zero bytes to buf until its length is a multiple of
// alignment. Alignment zero disables padding.
func Pad(buf []byte, alignment uint32) []byte {
	if alignment == 0 {
		return buf
	}
	if rem := len(buf) % int(alignment); rem != 0 {
		buf = append(buf, bytes.Repeat([]byte{0}, int(alignment)-rem)...)
	}
	return buf
}

// AlignUp rounds offset up to the next multiple of alignment. Alignment
// zero leaves the offset unchanged.
func AlignUp(offset int, alignment uint32) int {
	if alignment == 0 {
		return offset
	}
	if rem := offset % int(alignment); rem != 0 {
		offset += int(alignment) - rem
	}
	return offset
}
