package engine

import (
	"fmt"

	"github.com/thanhleviet/flowcraft/internal/registry"
	"github.com/thanhleviet/flowcraft/pkg/nf"
)

// RawInput assigns one raw input type to the set of channels that should
// receive the initial channel for that type.
type RawInput struct {
	Type  string
	Sinks []string
}

// ExtraInput declares a user-supplied extra input channel: an independently
// named parameter carrying data of a registered type, mixed into the given
// sink channels.
type ExtraInput struct {
	Param string
	Type  string
	Sinks []string
}

// SetRawInputs materializes the initial channel declarations and parameter
// checks on the root stage. For each raw input it registers the type's
// default parameter (idempotently), emits the validation checks and the
// initial-channel construction, and appends a fan-out declaration into the
// sink set. Declarations accumulate in the order given; only sink lists are
// canonicalized.
func (s *Stage) SetRawInputs(reg *registry.Registry, inputs []RawInput) error {
	if s.Kind != KindRoot {
		return &InvariantError{Stage: s.Template,
			Detail: "raw inputs set on a non-root stage"}
	}

	for _, in := range inputs {
		desc, ok := reg.Lookup(in.Type)
		if !ok {
			return &ConfigurationError{Stage: s.Template,
				Detail: fmt.Sprintf("unknown raw input type %q", in.Type)}
		}
		if len(in.Sinks) == 0 {
			return &ConfigurationError{Stage: s.Template,
				Detail: fmt.Sprintf("raw input %q has no sink channels", in.Type)}
		}
		if err := s.RegisterParam(desc.Param, desc.ParamSpec()); err != nil {
			return err
		}

		s.mainInputs = append(s.mainInputs, desc.Checks(desc.Param))
		decl := nf.ChannelDecl{Name: desc.ChannelName, Expr: desc.ChannelDecl(desc.Param)}
		s.mainInputs = append(s.mainInputs, decl.Render())

		s.forks = append(s.forks, canonicalFork(desc.ChannelName, in.Sinks))
	}
	return nil
}

// SetExtraInputs builds the independently named extra input channels on the
// root stage. Each channel is named "IN_{param}_extraInput" and registered
// under the caller's parameter name, so several extra inputs of the same
// type can coexist.
func (s *Stage) SetExtraInputs(reg *registry.Registry, extras []ExtraInput) error {
	if s.Kind != KindRoot {
		return &InvariantError{Stage: s.Template,
			Detail: "extra inputs set on a non-root stage"}
	}

	for _, extra := range extras {
		desc, ok := reg.Lookup(extra.Type)
		if !ok {
			return &ConfigurationError{Stage: s.Template,
				Detail: fmt.Sprintf("unknown extra input type %q for parameter %q",
					extra.Type, extra.Param)}
		}
		if len(extra.Sinks) == 0 {
			return &ConfigurationError{Stage: s.Template,
				Detail: fmt.Sprintf("extra input %q has no sink channels", extra.Param)}
		}
		spec := registry.ParamSpec{Default: desc.Default, Description: desc.Description}
		if err := s.RegisterParam(extra.Param, spec); err != nil {
			return err
		}

		name := fmt.Sprintf("IN_%s_extraInput", extra.Param)
		decl := nf.ChannelDecl{Name: name, Expr: desc.ChannelDecl(extra.Param)}
		s.extraInputs = append(s.extraInputs, decl.Render())

		fork := canonicalFork(name, extra.Sinks)
		s.extraInputs = append(s.extraInputs, fork.RenderInline())
	}
	return nil
}

// SetSecondaryInputs records the parameter-driven channel definitions
// contributed by the pipeline's components, emitted once at the top of the
// generated program.
func (s *Stage) SetSecondaryInputs(decls []string) error {
	if s.Kind != KindRoot {
		return &InvariantError{Stage: s.Template,
			Detail: "secondary inputs set on a non-root stage"}
	}
	s.secondaryInputs = append(s.secondaryInputs, decls...)
	return nil
}
