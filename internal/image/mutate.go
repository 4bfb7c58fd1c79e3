package image

import (
	"fmt"
	"strings"

	"github.com/R0rt1z2/liblk/internal/types"
)

// AddOptions control AddPartition. The zero value gives a legacy header
// at address 0 with the default alignment, appended at the end; nil
// pointer fields mean "decide automatically".
type AddOptions struct {
	// Address is the partition load address.
	Address uint64

	// Mode is the raw mode field.
	Mode uint32

	// ImageType tags the extended header. Ignored for legacy headers.
	ImageType *types.ImageType

	// Extended forces the header format. When nil, the extended format
	// is selected automatically if the payload size or address does not
	// fit in 32 bits.
	Extended *bool

	// Alignment overrides the payload alignment (extended headers only).
	Alignment *uint32

	// Position inserts the partition at this index instead of appending.
	Position *int
}

// AddPartition creates a new partition and inserts it into the
// collection, then rebuilds the image buffer. The new header's list-end
// flag is left clear; Rebuild normalizes it.
func (img *LkImage) AddPartition(name string, data []byte, opts *AddOptions) (*types.Partition, error) {
	if opts == nil {
		opts = &AddOptions{}
	}
	if _, exists := img.index[name]; exists {
		return nil, fmt.Errorf("%w: %s", types.ErrDuplicateName, name)
	}

	extended := uint64(len(data)) > 0xFFFFFFFF || opts.Address > 0xFFFFFFFF
	if opts.Extended != nil {
		extended = *opts.Extended
	}

	alignment := img.cfg.Image.DefaultAlignment
	if opts.Alignment != nil {
		alignment = *opts.Alignment
	}

	hdr, err := types.NewHeader(name, uint64(len(data)), opts.Address, opts.Mode, extended, alignment)
	if err != nil {
		return nil, err
	}
	if extended && opts.ImageType != nil {
		hdr.ImageType = *opts.ImageType
	}

	p := &types.Partition{Header: hdr, Data: data}

	pos := len(img.entries)
	if opts.Position != nil && *opts.Position >= 0 && *opts.Position < len(img.entries) {
		pos = *opts.Position
	}

	img.entries = append(img.entries, entry{})
	copy(img.entries[pos+1:], img.entries[pos:])
	img.entries[pos] = entry{name: name, part: p}
	img.reindex()

	img.Rebuild()
	img.version = classifyVersion(img.Partitions())
	return p, nil
}

// RemovePartition removes the named partition and its certificates and
// rebuilds the image buffer.
func (img *LkImage) RemovePartition(name string) error {
	i, ok := img.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPartitionNotFound, name)
	}

	img.entries = append(img.entries[:i], img.entries[i+1:]...)
	img.reindex()

	img.Rebuild()
	img.version = classifyVersion(img.Partitions())
	return nil
}

// AddCertificate attaches a certificate partition to the named owner.
// certType must be "cert1" or "cert2"; the certificate is named after
// the type alone when the owner is lk, "<type>_<owner>" otherwise, and
// inherits the owner's header format and alignment.
//
// The image buffer is not rebuilt here: callers batch certificate
// additions and call Rebuild before reading Bytes.
func (img *LkImage) AddCertificate(owner string, data []byte, certType string) (*types.Partition, error) {
	if certType != "cert1" && certType != "cert2" {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidCertificateType, certType)
	}

	p, ok := img.lookup(owner)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrPartitionNotFound, owner)
	}

	name := certType
	if !strings.EqualFold(owner, "lk") {
		name = fmt.Sprintf("%s_%s", certType, owner)
	}

	hdr, err := types.NewHeader(name, uint64(len(data)), 0, 0,
		p.Header.IsExtended(), p.Header.EffectiveAlignment())
	if err != nil {
		return nil, err
	}
	if hdr.IsExtended() {
		hdr.ImageType = types.ImageType{Group: types.GroupCert, ID: certID(certType)}
	}

	cert := &types.Partition{Header: hdr, Data: data}
	p.Certs = append(p.Certs, cert)
	return cert, nil
}

func certID(certType string) uint8 {
	if certType == "cert2" {
		return types.Cert2
	}
	return types.Cert1
}

// reindex recomputes the name index after an order change.
func (img *LkImage) reindex() {
	img.index = make(map[string]int, len(img.entries))
	for i, e := range img.entries {
		img.index[e.name] = i
	}
}
