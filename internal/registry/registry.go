// Package registry holds the fixed vocabulary of raw input data types and
// their Nextflow parameter/channel descriptors. The registry is an immutable
// value injected into the wiring engine at construction.
package registry

import (
	"fmt"
	"sort"
)

// ParamSpec documents a pipeline parameter: its default value expression and
// a human-readable description for the generated help text.
type ParamSpec struct {
	Default     string
	Description string
}

// Descriptor describes one raw input data type. ChannelExpr and ChecksExpr
// are templates with a single %[1]s slot for the parameter name.
type Descriptor struct {
	Name        string
	Param       string
	Default     string
	Description string
	ChannelName string
	ChannelExpr string
	ChecksExpr  string
}

// ChannelDecl returns the initial-channel construction expression with the
// parameter name substituted, without the leading assignment.
func (d Descriptor) ChannelDecl(param string) string {
	return fmt.Sprintf(d.ChannelExpr, param)
}

// Checks returns the parameter validation expression with the parameter name
// substituted.
func (d Descriptor) Checks(param string) string {
	return fmt.Sprintf(d.ChecksExpr, param)
}

// ParamSpec returns the descriptor's default parameter documentation entry.
func (d Descriptor) ParamSpec() ParamSpec {
	return ParamSpec{Default: d.Default, Description: d.Description}
}

// Registry is a lookup table from type name to Descriptor.
type Registry struct {
	types map[string]Descriptor
}

// New builds a Registry from the given descriptors, keyed by name.
func New(descriptors ...Descriptor) *Registry {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = d
	}
	return &Registry{types: m}
}

// Lookup returns the descriptor for a type name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Types returns all registered type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
