// Package builder drives the wiring engine: it turns a parsed pipeline
// graph into fully wired stages with assigned channels, consolidated forks,
// resolved links, synthesized raw inputs and compiled status/report sinks,
// ready for template rendering.
package builder

import (
	"fmt"
	"log/slog"

	"github.com/thanhleviet/flowcraft/internal/components"
	"github.com/thanhleviet/flowcraft/internal/engine"
	"github.com/thanhleviet/flowcraft/internal/parser"
	"github.com/thanhleviet/flowcraft/internal/registry"
)

// ExtraInputSpec requests an extra input channel for one or more component
// occurrences. Type may be empty, in which case the targets' declared input
// type is used.
type ExtraInputSpec struct {
	Param   string
	Type    string
	Targets []string
}

// Built pairs a wired stage with its component definition and finished
// render context.
type Built struct {
	Stage *engine.Stage
	Def   components.Def
	Ctx   *engine.Context
}

// Pipeline is the fully wired compilation result.
type Pipeline struct {
	Expr   string
	Root   *Built
	Stages []*Built
	// Status and Report hold the compiled sink stages; nil when no stage
	// in the pipeline publishes the corresponding channels.
	Status *Built
	Report *Built

	// Params and Directives are the merged documentation/config tables
	// across every stage, keyed by parameter and process name.
	Params     map[string]registry.ParamSpec
	Directives map[string]components.Directive
}

// Builder compiles pipeline expressions against a type registry.
type Builder struct {
	reg    *registry.Registry
	logger *slog.Logger
}

// New creates a Builder.
func New(reg *registry.Registry, logger *slog.Logger) *Builder {
	return &Builder{reg: reg, logger: logger.With("component", "builder")}
}

// Build parses and wires the pipeline expression.
func (b *Builder) Build(expr string, extras []ExtraInputSpec) (*Pipeline, error) {
	graph, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}

	stages := make([]*Built, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		def, ok := components.Get(node.Template)
		if !ok {
			return nil, &engine.ConfigurationError{Stage: node.Template,
				Detail: "unknown component"}
		}
		stages = append(stages, &Built{Stage: components.NewStage(def), Def: def})
	}

	root := engine.NewStage("init", engine.KindRoot)
	root.OutputType = "raw"
	root.SetChannelNames("0_0", "0_0", 0)
	if err := root.SetChannels(0); err != nil {
		return nil, err
	}

	if err := b.assignPositions(graph, stages); err != nil {
		return nil, err
	}
	rawInputs, err := b.connect(graph, stages)
	if err != nil {
		return nil, err
	}
	if err := b.resolveLinks(stages); err != nil {
		return nil, err
	}
	if err := root.SetRawInputs(b.reg, rawInputs); err != nil {
		return nil, err
	}
	if err := b.setSecondaryInputs(root, stages); err != nil {
		return nil, err
	}
	if err := b.setExtraInputs(root, stages, extras); err != nil {
		return nil, err
	}

	p := &Pipeline{Expr: expr, Root: &Built{Stage: root}, Stages: stages}
	if err := b.compileSinks(p); err != nil {
		return nil, err
	}
	if err := b.finalize(p); err != nil {
		return nil, err
	}

	b.logger.Debug("pipeline wired",
		"stages", len(stages), "lanes", graph.LaneCount, "params", len(p.Params))
	return p, nil
}

// assignPositions walks the graph in definition order handing out pids.
// Stages flagged ignorePID do not consume a slot, so terminal side-forks
// never shift the numbering of the main lane. Channel names embed the
// template, so distinct templates may share a (lane, pid) coordinate; only
// a repeated template at the same coordinate collides.
func (b *Builder) assignPositions(graph *parser.Graph, stages []*Built) error {
	pid := 1
	seen := make(map[string]bool)

	for i, node := range graph.Nodes {
		s := stages[i].Stage
		suffix := fmt.Sprintf("%d_%d", node.Lane, pid)
		s.SetChannelNames(suffix, suffix, node.Lane)
		if err := s.SetChannels(pid); err != nil {
			return err
		}
		key := s.Template + "_" + s.Position()
		if seen[key] {
			return &engine.InvariantError{Stage: s.Template,
				Detail: fmt.Sprintf("channel namespace %s already taken", key)}
		}
		seen[key] = true

		if !s.IgnorePID {
			pid++
		}
	}
	return nil
}

// connect wires every edge of the graph: raw input sinks for root children,
// direct input rewiring for single consumers, and main-output fan-outs for
// multi-consumer stages. Returns the accumulated raw input assignments in
// first-seen type order.
func (b *Builder) connect(graph *parser.Graph, stages []*Built) ([]engine.RawInput, error) {
	var rawInputs []engine.RawInput
	rawIdx := make(map[string]int)

	for _, childIdx := range graph.Children(parser.RootParent) {
		child := stages[childIdx].Stage
		if _, ok := b.reg.Lookup(child.InputType); !ok {
			return nil, &engine.ConfigurationError{Stage: child.Template,
				Detail: fmt.Sprintf("cannot start a pipeline: input type %q is not a raw type", child.InputType)}
		}
		i, ok := rawIdx[child.InputType]
		if !ok {
			rawInputs = append(rawInputs, engine.RawInput{Type: child.InputType})
			i = len(rawInputs) - 1
			rawIdx[child.InputType] = i
		}
		rawInputs[i].Sinks = append(rawInputs[i].Sinks, child.InputChannel)
	}

	for idx := range graph.Nodes {
		parent := stages[idx].Stage
		children := graph.Children(idx)
		for _, childIdx := range children {
			child := stages[childIdx].Stage
			if !parent.IgnoreType && !child.IgnoreType && parent.OutputType != child.InputType {
				return nil, &engine.TypeMismatchError{
					From: parent.Template, To: child.Template,
					FromType: parent.OutputType, ToType: child.InputType,
				}
			}
		}

		switch {
		case len(children) == 1:
			stages[children[0]].Stage.UpdateMainInput(parent.OutputChannel)
		case len(children) > 1:
			for _, childIdx := range children {
				if err := parent.AddMainSink(stages[childIdx].Stage.InputChannel); err != nil {
					return nil, err
				}
			}
		}
	}
	return rawInputs, nil
}

// resolveLinks rejects link requests with no producer, then runs the
// whole-graph anchor resolution.
func (b *Builder) resolveLinks(stages []*Built) error {
	all := make([]*engine.Stage, len(stages))
	for i, st := range stages {
		all[i] = st.Stage
	}

	advertised := engine.AdvertisedAnchors(all)
	for _, st := range stages {
		for _, end := range st.Stage.LinkEnd {
			if !advertised[end.Anchor] {
				return &engine.ConfigurationError{Stage: st.Stage.Template,
					Detail: fmt.Sprintf("link anchor %q is not advertised by any component in the pipeline", end.Anchor)}
			}
		}
	}
	return engine.ResolveLinks(all)
}

// setSecondaryInputs collects the parameter-driven channel definitions of
// every component, first occurrence of a parameter wins.
func (b *Builder) setSecondaryInputs(root *engine.Stage, stages []*Built) error {
	var decls []string
	seen := make(map[string]bool)
	for _, st := range stages {
		for _, si := range st.Def.SecondaryInputs {
			if seen[si.Param] {
				continue
			}
			seen[si.Param] = true
			decls = append(decls, si.Channel)
		}
	}
	return root.SetSecondaryInputs(decls)
}

// setExtraInputs translates template-level extra input requests into the
// concrete sink channels of the matching occurrences.
func (b *Builder) setExtraInputs(root *engine.Stage, stages []*Built, extras []ExtraInputSpec) error {
	if len(extras) == 0 {
		return nil
	}

	resolved := make([]engine.ExtraInput, 0, len(extras))
	mixed := make(map[string]bool)
	for _, extra := range extras {
		in := engine.ExtraInput{Param: extra.Param, Type: extra.Type}
		for _, target := range extra.Targets {
			found := false
			for _, st := range stages {
				if st.Stage.Template != target {
					continue
				}
				found = true
				// Each occurrence consumes the extra channel through a
				// dedicated per-position channel mixed into its main input.
				sink := fmt.Sprintf("EXTRA_%s_%s", st.Stage.Template, st.Stage.Position())
				in.Sinks = append(in.Sinks, sink)
				if !mixed[sink] {
					mixed[sink] = true
					st.Stage.MixIntoInput(sink)
				}
				if in.Type == "" {
					in.Type = st.Stage.InputType
				}
			}
			if !found {
				return &engine.ConfigurationError{Stage: target,
					Detail: fmt.Sprintf("extra input %q targets a component not present in the pipeline", extra.Param)}
			}
		}
		resolved = append(resolved, in)
	}
	return root.SetExtraInputs(b.reg, resolved)
}

// compileSinks builds the status and report compiler stages from the
// channels collected across the whole pipeline, in stage order.
func (b *Builder) compileSinks(p *Pipeline) error {
	var status, report []string
	for _, st := range p.Stages {
		status = append(status, st.Stage.StatusChannels()...)
		report = append(report, st.Stage.ReportChannels()...)
	}

	if len(status) > 0 {
		s := engine.NewStage("status_compiler", engine.KindCompiler)
		if err := s.SetCompilerChannels(status); err != nil {
			return err
		}
		p.Status = &Built{Stage: s}
	}
	if len(report) > 0 {
		s := engine.NewStage("report_compiler", engine.KindCompiler)
		if err := s.SetCompilerChannels(report); err != nil {
			return err
		}
		p.Report = &Built{Stage: s}
	}
	return nil
}

// finalize builds every stage context and merges the parameter and
// directive tables. After this the stages are read-only.
func (b *Builder) finalize(p *Pipeline) error {
	p.Params = make(map[string]registry.ParamSpec)
	p.Directives = make(map[string]components.Directive)

	for _, st := range append([]*Built{p.Root}, p.Stages...) {
		ctx, err := st.Stage.BuildContext()
		if err != nil {
			return err
		}
		st.Ctx = ctx

		for name, spec := range st.Stage.Params {
			if existing, ok := p.Params[name]; ok && existing != spec {
				return &engine.ConfigurationError{Stage: st.Stage.Template,
					Detail: fmt.Sprintf("parameter %q declared twice with conflicting definitions", name)}
			}
			p.Params[name] = spec
		}
		for name, d := range st.Def.Directives {
			p.Directives[name] = d
		}
	}

	for _, st := range []*Built{p.Status, p.Report} {
		if st == nil {
			continue
		}
		ctx, err := st.Stage.BuildContext()
		if err != nil {
			return err
		}
		st.Ctx = ctx
	}
	return nil
}
