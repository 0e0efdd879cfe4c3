package spec

import (
	"fmt"
	"strings"
)

// ResourceDescriptor names a SCIM resource type (e.g. "User", "Group") and
// lists its top-level attribute descriptors in declared order (§3).
type ResourceDescriptor struct {
	name       string
	attributes []*Attribute
}

// NewResourceDescriptor builds a resource descriptor from its name and
// top-level attributes.
func NewResourceDescriptor(name string, attributes ...*Attribute) *ResourceDescriptor {
	return &ResourceDescriptor{name: name, attributes: attributes}
}

// Name returns the resource type name.
func (r *ResourceDescriptor) Name() string {
	return r.name
}

// ForEachAttribute invokes callback on each top-level attribute in
// declared order.
func (r *ResourceDescriptor) ForEachAttribute(callback func(attr *Attribute)) {
	for _, a := range r.attributes {
		callback(a)
	}
}

// AttributeForName returns the top-level attribute addressed by name
// (case-insensitive) within schemaURN (case-sensitive; "" for core
// attributes), or nil.
func (r *ResourceDescriptor) AttributeForName(schemaURN, name string) *Attribute {
	for _, a := range r.attributes {
		if a.schemaURN != schemaURN {
			continue
		}
		if a.GoesBy(name) {
			return a
		}
	}
	return nil
}

// Registry holds SCIM resource and attribute descriptors built once during
// initialization (§4.A). Lookups are read-only, case-insensitive on
// attribute names, case-sensitive on schema URIs. Resource names are
// lower-cased once at registration; attribute names are compared
// case-insensitively at lookup time.
//
// Registry is safe for concurrent read access by any number of workers
// once construction (Register*) has finished; it carries no lock on the
// lookup path.
type Registry struct {
	resources map[string]*ResourceDescriptor
}

// NewRegistry returns an empty registry ready to be populated via
// RegisterResource.
func NewRegistry() *Registry {
	return &Registry{resources: map[string]*ResourceDescriptor{}}
}

// RegisterResource adds a resource descriptor to the registry, keyed
// case-insensitively by its name.
func (r *Registry) RegisterResource(rd *ResourceDescriptor) {
	r.resources[strings.ToLower(rd.name)] = rd
}

// LookupResource returns the resource descriptor for name, or
// ErrNotFound.
func (r *Registry) LookupResource(name string) (*ResourceDescriptor, error) {
	rd, ok := r.resources[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: resource %q", ErrNotFound, name)
	}
	return rd, nil
}

// LookupAttribute returns the attribute descriptor addressed by
// (schemaURI, name) within resourceName's resource descriptor, or
// ErrNotFound.
func (r *Registry) LookupAttribute(resourceName, schemaURI, name string) (*Attribute, error) {
	rd, err := r.LookupResource(resourceName)
	if err != nil {
		return nil, err
	}
	if attr := rd.AttributeForName(schemaURI, name); attr != nil {
		return attr, nil
	}
	return nil, fmt.Errorf("%w: attribute %q in resource %q", ErrNotFound, name, resourceName)
}

// LookupSubAttribute returns the sub-attribute of parent addressed by
// name, or ErrNotFound.
func (r *Registry) LookupSubAttribute(parent *Attribute, name string) (*Attribute, error) {
	if sub := parent.SubAttributeForName(name); sub != nil {
		return sub, nil
	}
	return nil, fmt.Errorf("%w: sub-attribute %q of %q", ErrNotFound, name, parent.FullName())
}
