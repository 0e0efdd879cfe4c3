// Package scimval models SCIM resource values as the short-lived,
// request-scoped holders described in spec.md §3 Lifecycle: plain Go
// values keyed by attribute path, not a live, subscriber-observed document.
//
// The Go-type correspondence below is grounded on the doc comment of
// github.com/imulab/go-scim's pkg/v2/prop.Property#Raw method; this
// package reuses the same correspondence without porting that package's
// event/subscriber/PATCH machinery, which is out of this gateway's scope
// (see DESIGN.md "Not ported").
package scimval

import "strconv"

// Simple is a SCIM simple (non-complex) value in its Go-native
// representation:
//
//	SCIM string   <-> Go string
//	SCIM boolean  <-> Go bool
//	SCIM integer  <-> Go int64
//	SCIM dateTime <-> Go string (ISO-8601)
//	SCIM binary   <-> Go string (base64)
type Simple struct {
	raw interface{}
}

// NewSimple wraps a Go-native value as a Simple SCIM value.
func NewSimple(raw interface{}) Simple {
	return Simple{raw: raw}
}

// Raw returns the underlying Go-native value.
func (v Simple) Raw() interface{} {
	return v.raw
}

// IsUnassigned returns true if the value carries no data.
func (v Simple) IsUnassigned() bool {
	return v.raw == nil
}

// String renders the value's string form regardless of its underlying Go
// type, as needed by transformations and filter value comparisons.
func (v Simple) String() string {
	switch t := v.raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
