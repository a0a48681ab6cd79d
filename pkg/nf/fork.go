// Package nf models Nextflow DSL fragments emitted by the wiring engine.
// The engine builds structured values (source, operator, sink list) and the
// renderer turns them into pipeline text, so no component composes raw DSL
// strings inline.
package nf

import (
	"fmt"
	"strings"
)

// Operator is a Nextflow channel fan-out operator.
type Operator string

const (
	// OpSet redirects a channel to exactly one consumer.
	OpSet Operator = "set"
	// OpInto copies a channel into two or more consumers.
	OpInto Operator = "into"
)

// Fork is a fan-out declaration: one source channel redirected to one or
// more sink channels.
type Fork struct {
	Source string
	Sinks  []string
}

// Operator returns "set" for a single sink and "into" otherwise.
func (f Fork) Operator() Operator {
	if len(f.Sinks) == 1 {
		return OpSet
	}
	return OpInto
}

// Render produces the textual declaration, e.g.
//
//	\nspades_out_1_2.into{ abricate_in_1_3;prokka_in_1_4 }\n
//
// The surrounding newlines keep declarations separated when several are
// concatenated into one template slot.
func (f Fork) Render() string {
	return fmt.Sprintf("\n%s.%s{ %s }\n", f.Source, f.Operator(), strings.Join(f.Sinks, ";"))
}

// RenderInline produces the declaration without surrounding newlines, for
// slots that lay out declarations themselves.
func (f Fork) RenderInline() string {
	return fmt.Sprintf("%s.%s{ %s }", f.Source, f.Operator(), strings.Join(f.Sinks, ";"))
}

// RenderForks renders each fork and joins them with newlines, preserving
// order. The result is byte-identical across runs for the same input.
func RenderForks(forks []Fork) string {
	parts := make([]string, len(forks))
	for i, f := range forks {
		parts[i] = f.Render()
	}
	return strings.Join(parts, "\n")
}
