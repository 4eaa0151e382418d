package storage

// Transport identifies the configured storage backend.
type Transport string

const (
	TransportDatabase Transport = "database"
	TransportS3       Transport = "s3"
	TransportGCS      Transport = "gcs"
)

// ParseTransport resolves a configuration value to exactly one backend.
// Absent or unrecognized values fall back to the database transport;
// callers that require a specific cloud backend must use Require
// instead of relying on the fallback.
func ParseTransport(s string) Transport {
	switch Transport(s) {
	case TransportS3:
		return TransportS3
	case TransportGCS:
		return TransportGCS
	default:
		return TransportDatabase
	}
}

// Require returns ErrInvalidTransport unless the configured value
// resolves to want. It exists for call sites that would silently
// misroute uploads on a fallback.
func Require(configured string, want Transport) error {
	if ParseTransport(configured) != want {
		return ErrInvalidTransport
	}
	return nil
}
