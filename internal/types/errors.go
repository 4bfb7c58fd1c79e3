package types

import "errors"

// Error kinds raised by the codec. Callers match with errors.Is; the CLI
// maps them onto exit codes.
var (
	// ErrInvalidHeader means a 512-byte header window could not be read.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrInvalidPartition means a partition failed structural validation:
	// bad magic, malformed header, or a certificate with no owner.
	ErrInvalidPartition = errors.New("invalid partition")

	// ErrDuplicateName means a partition name collided, either during
	// parsing (with the error duplicate policy) or on AddPartition.
	ErrDuplicateName = errors.New("duplicate partition name")

	// ErrNameTooLong means a partition name exceeds the 32-byte field.
	ErrNameTooLong = errors.New("partition name too long")

	// ErrPartitionNotFound means a lookup, removal, or scoped patch named
	// a partition the image does not contain.
	ErrPartitionNotFound = errors.New("partition not found")

	// ErrNeedleNotFound means a patch target byte sequence is absent.
	ErrNeedleNotFound = errors.New("needle not found")

	// ErrInvalidCertificateType means a certificate tag other than
	// "cert1" or "cert2" was supplied.
	ErrInvalidCertificateType = errors.New("invalid certificate type")
)
