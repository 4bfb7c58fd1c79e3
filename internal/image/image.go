// Package image implements the LK image container: parsing a raw byte
// stream into an ordered partition collection, mutating it, and
// re-serializing it back into a byte-exact stream.
package image

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/R0rt1z2/liblk/internal/config"
	"github.com/R0rt1z2/liblk/internal/parsers/partition"
	"github.com/R0rt1z2/liblk/internal/types"
)

// entry pairs a partition with the name it is registered under. The
// registered name can differ from the header name when the rename
// duplicate policy is active ("cert1 (1)").
type entry struct {
	name string
	part *types.Partition
}

// LkImage is a parsed LK image: the raw buffer plus an insertion-ordered
// unique name to partition mapping. Mutations go through AddPartition,
// RemovePartition, AddCertificate, and ApplyPatch; Rebuild regenerates
// the buffer from the collection.
//
// An LkImage is single-owner: concurrent mutation must be serialized by
// the caller.
type LkImage struct {
	path     string
	contents []byte
	entries  []entry
	index    map[string]int
	version  int
	cfg      *config.Config
}

// NewFromFile loads and parses an LK image from disk.
func NewFromFile(path string, cfg *config.Config) (*LkImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := NewFromBytes(data, cfg)
	if err != nil {
		return nil, err
	}
	img.path = path
	return img, nil
}

// NewFromBytes parses an LK image from an in-memory buffer. A nil cfg
// selects the built-in defaults.
func NewFromBytes(data []byte, cfg *config.Config) (*LkImage, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	img := &LkImage{
		contents: data,
		index:    make(map[string]int),
		cfg:      cfg,
	}
	if err := img.parse(); err != nil {
		return nil, err
	}
	img.version = classifyVersion(img.Partitions())
	return img, nil
}

// parse walks the buffer partition by partition, associating certificate
// partitions with the closest preceding regular partition, until the
// image_list_end flag or the end-of-stream heuristic fires.
func (img *LkImage) parse() error {
	offset := 0
	lastName := ""
	nameCounts := make(map[string]int)

	for offset < len(img.contents) {
		p, err := partition.Read(img.contents[offset:], offset)
		if err != nil {
			if img.tolerateTrailing(lastName) {
				break
			}
			return err
		}

		name := p.Name()
		switch {
		case strings.HasPrefix(name, types.CertPrefix):
			owner, ok := img.lookup(lastName)
			if !ok {
				return fmt.Errorf("%w: certificate partition placed before actual partition",
					types.ErrInvalidPartition)
			}
			owner.Certs = append(owner.Certs, p)

		default:
			if _, exists := img.index[name]; exists {
				if img.cfg.Parser.DuplicatePolicy != config.DuplicateRename {
					return fmt.Errorf("%w: %s", types.ErrDuplicateName, name)
				}
				nameCounts[name]++
				name = fmt.Sprintf("%s (%d)", name, nameCounts[name])
			}
			lastName = name
			img.index[name] = len(img.entries)
			img.entries = append(img.entries, entry{name: name, part: p})
		}

		if strings.EqualFold(p.Header.Name, "lk") && p.Header.LoadAddrLow == types.UnresolvedLoadAddr {
			partition.RecoverLoadAddress(p, img.contents)
		}

		if p.Header.IsExtended() && p.Header.ImageListEnd == 1 {
			break
		}

		offset = p.EndOffset

		if !p.Header.IsExtended() || p.Header.ImageListEnd > 1 {
			if img.endOfPartitions(offset) {
				break
			}
		}
	}

	return nil
}

// tolerateTrailing decides whether a parse failure past the first
// partition is swallowed as legacy trailing garbage.
func (img *LkImage) tolerateTrailing(lastName string) bool {
	if len(img.entries) == 0 {
		return false
	}
	switch img.cfg.Parser.TrailingTolerance {
	case config.TolerateAny:
		return true
	case config.TolerateLK:
		return strings.EqualFold(lastName, "lk")
	default:
		return false
	}
}

// endOfPartitions reports whether no further partition can start at
// offset: past the buffer, not enough room for a header, or no magic.
func (img *LkImage) endOfPartitions(offset int) bool {
	if offset >= len(img.contents) {
		return true
	}
	if len(img.contents)-offset < types.HeaderSize {
		return true
	}
	return binary.LittleEndian.Uint32(img.contents[offset:]) != types.Magic
}

// lookup returns the partition registered under name.
func (img *LkImage) lookup(name string) (*types.Partition, bool) {
	i, ok := img.index[name]
	if !ok {
		return nil, false
	}
	return img.entries[i].part, true
}

// GetPartition returns the named partition.
func (img *LkImage) GetPartition(name string) (*types.Partition, error) {
	p, ok := img.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrPartitionNotFound, name)
	}
	return p, nil
}

// Partitions returns the partition names in insertion order.
func (img *LkImage) Partitions() []string {
	names := make([]string, len(img.entries))
	for i, e := range img.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of partitions, certificates excluded.
func (img *LkImage) Len() int {
	return len(img.entries)
}

// Version returns the classified image version.
func (img *LkImage) Version() int {
	return img.version
}

// Path returns the source file path, empty for in-memory images.
func (img *LkImage) Path() string {
	return img.path
}

// Bytes returns the current raw image buffer. Mutations that change
// partition sizes require a Rebuild before the buffer is consistent.
func (img *LkImage) Bytes() []byte {
	return img.contents
}

// Save writes the current buffer to path.
func (img *LkImage) Save(path string) error {
	if err := os.WriteFile(path, img.contents, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// String summarizes the image.
func (img *LkImage) String() string {
	return fmt.Sprintf("LkImage(path=%s, version=%d, partitions=%d, size=%d bytes)",
		img.path, img.version, len(img.entries), len(img.contents))
}
