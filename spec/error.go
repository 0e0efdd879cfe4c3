package spec

// Error prototypes for the mapping and filter-compilation core (§7).
//
// The taxonomy is intentionally small and closed: a sum type at the
// boundary, not a wide exception hierarchy. To add detail to an error,
// wrap the prototype with fmt.Errorf("additional detail: %w", err) rather
// than defining a new error type.
var (
	// InvalidFilter is raised by the filter parser on malformed SCIM filter
	// syntax. Surfaced to HTTP as 400 by the (out of scope) REST layer.
	ErrInvalidFilter = &Error{Status: 400, Type: "invalidFilter"}

	// UnsupportedConversion is raised by a value transformation applied to
	// an attribute descriptor whose data type it does not support.
	ErrUnsupportedConversion = &Error{Status: 400, Type: "unsupportedConversion"}

	// UnknownAttribute on write is never raised as an error: unrecognized
	// SCIM attributes are silently dropped per §7. This prototype exists so
	// a caller can still log the decision at a low severity without
	// inventing a second, shadow taxonomy.
	ErrUnknownAttribute = &Error{Status: 400, Type: "unknownAttribute"}

	// InvalidValue indicates a value was structurally present but could not
	// be used for the requested purpose (e.g. a DN template placeholder
	// that resolved to an unassigned attribute).
	ErrInvalidValue = &Error{Status: 400, Type: "invalidValue"}

	// NotFound indicates a lookup failed against the schema registry.
	ErrNotFound = &Error{Status: 404, Type: "notFound"}

	// Internal indicates a bug: an invariant the core itself is supposed to
	// guarantee was violated.
	ErrInternal = &Error{Status: 500, Type: "internal"}
)

// Error is a SCIM-gateway error tag. It is deliberately minimal: Status is
// the HTTP status an (out of scope) REST layer should report, Type is a
// stable machine-readable discriminator.
type Error struct {
	Status int
	Type   string
}

func (e *Error) Error() string {
	return e.Type
}

var _ error = (*Error)(nil)
