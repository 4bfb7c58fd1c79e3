package image

// Partitions that only appear in second-generation LK images.
var v2Partitions = map[string]bool{
	"aee":     true,
	"bl2_ext": true,
}

// classifyVersion tags the image generation from the partition names it
// carries. Purely informational; parsing and serialization do not depend
// on it.
func classifyVersion(names []string) int {
	for _, name := range names {
		if v2Partitions[name] {
			return 2
		}
	}
	return 1
}
