// Package engine wires pipeline stages into a Nextflow channel graph. It
// assigns globally unique channel names, consolidates fan-outs, resolves
// secondary links between distant stages, aggregates status channels and
// synthesizes raw input declarations. All operations are deterministic pure
// computations: the same call sequence always emits byte-identical text.
package engine

import (
	"fmt"
	"strings"

	"github.com/thanhleviet/flowcraft/internal/registry"
	"github.com/thanhleviet/flowcraft/pkg/nf"
)

// Kind selects the behavior of a stage.
type Kind int

const (
	// KindStandard is a regular processing stage.
	KindStandard Kind = iota
	// KindRoot is the synthetic first stage that materializes raw inputs.
	KindRoot
	// KindCompiler is a sink stage that merges collected channels
	// (status or report) into a single compiled channel.
	KindCompiler
)

// LinkEnd declares that a stage wants to receive a named fan-out from
// whichever upstream stage advertises Anchor in its link starts.
type LinkEnd struct {
	Anchor string
	Alias  string
}

// Stage is one node of the pipeline graph: the identity, declared types and
// the channel/fork bookkeeping accumulated while the graph is wired.
//
// A Stage is created once per occurrence of its template in the pipeline,
// mutated during the single-pass construction phase, and read-only once its
// context has been built.
type Stage struct {
	Template     string
	Kind         Kind
	InputType    string
	OutputType   string
	IgnoreType   bool
	IgnorePID    bool
	Dependencies []string

	// LinkStart lists the anchors this stage exposes as fan-out sources.
	// Nil disables link starts (terminal stages).
	LinkStart []string
	// LinkEnd lists the named fan-outs this stage consumes.
	LinkEnd []LinkEnd

	// StatusStems holds the status channel name stems, one per process in
	// the stage template. Concrete names are derived in SetChannels.
	StatusStems []string
	// ReportStems holds the report channel name stems for stages that
	// publish report data, derived the same way as status channels.
	ReportStems []string

	// Params maps parameter names to their documentation entries,
	// accumulated from the component table and the raw input synthesizer.
	Params map[string]registry.ParamSpec

	Lane          int
	InputChannel  string
	OutputChannel string

	pid            string
	statusChannels []string
	reportChannels []string
	forks          []nf.Fork
	mainForkIdx    int
	mainForks      []string

	mainInputs      []string
	secondaryInputs []string
	extraInputs     []string
	compiled        string

	ctx *Context
}

// NewStage creates a stage for the given template. Standard stages start
// with the default single status stem; root and compiler stages have none.
func NewStage(template string, kind Kind) *Stage {
	s := &Stage{
		Template:    template,
		Kind:        kind,
		Params:      make(map[string]registry.ParamSpec),
		mainForkIdx: -1,
	}
	if kind == KindStandard {
		s.StatusStems = []string{"STATUS_" + template}
	}
	return s
}

// SetChannelNames derives the canonical input and output channel names from
// the given suffixes and records the lane. The suffixes are expected to be
// "{lane}_{pid}" coordinates, which makes every channel name unique across
// the generated program.
func (s *Stage) SetChannelNames(inSuffix, outSuffix string, lane int) {
	s.InputChannel = fmt.Sprintf("%s_in_%s", s.Template, inSuffix)
	s.OutputChannel = fmt.Sprintf("%s_out_%s", s.Template, outSuffix)
	s.Lane = lane
}

// SetChannels caches the stage position as "{lane}_{pid}" and derives the
// concrete status channel names from the stems. The position is set once:
// a repeated call with the same pid is a no-op, a conflicting pid is an
// invariant violation.
func (s *Stage) SetChannels(pid int) error {
	position := fmt.Sprintf("%d_%d", s.Lane, pid)
	if s.pid != "" {
		if s.pid != position {
			return &InvariantError{
				Stage: s.Template,
				Detail: fmt.Sprintf("position already assigned as %s, refusing %s",
					s.pid, position),
			}
		}
		return nil
	}
	s.pid = position

	for _, stem := range s.StatusStems {
		s.statusChannels = append(s.statusChannels, stem+"_"+s.pid)
	}
	for _, stem := range s.ReportStems {
		s.reportChannels = append(s.reportChannels, stem+"_"+s.pid)
	}
	return nil
}

// Position returns the cached "{lane}_{pid}" coordinate, empty before
// SetChannels.
func (s *Stage) Position() string {
	return s.pid
}

// StatusChannels returns the concrete status channel names derived in
// SetChannels.
func (s *Stage) StatusChannels() []string {
	out := make([]string, len(s.statusChannels))
	copy(out, s.statusChannels)
	return out
}

// ReportChannels returns the concrete report channel names derived in
// SetChannels.
func (s *Stage) ReportChannels() []string {
	out := make([]string, len(s.reportChannels))
	copy(out, s.reportChannels)
	return out
}

// UpdateMainInput rewires the stage input to the given channel. Used when a
// stage is the single consumer of its predecessor, so the predecessor's
// output feeds it directly instead of through a fork.
func (s *Stage) UpdateMainInput(channel string) {
	s.InputChannel = channel
}

// MixIntoInput merges an additional channel into the stage input, so the
// stage consumes both its upstream output and the extra channel.
func (s *Stage) MixIntoInput(channel string) {
	s.InputChannel = nf.Mix{Channels: []string{s.InputChannel, channel}}.Render()
}

// RegisterParam records a parameter documentation entry. Registering the
// same name with the same spec is a no-op; a conflicting spec is a
// configuration error.
func (s *Stage) RegisterParam(name string, spec registry.ParamSpec) error {
	if existing, ok := s.Params[name]; ok {
		if existing != spec {
			return &ConfigurationError{
				Stage:  s.Template,
				Detail: fmt.Sprintf("parameter %q registered twice with conflicting definitions", name),
			}
		}
		return nil
	}
	s.Params[name] = spec
	return nil
}

// Forks renders the accumulated fork declarations in emission order.
func (s *Stage) Forks() string {
	return nf.RenderForks(s.forks)
}

// BuildContext assembles the context mapping handed to the renderer. Called
// once, after all wiring operations; the stage is read-only afterwards.
func (s *Stage) BuildContext() (*Context, error) {
	if s.pid == "" && s.Kind != KindCompiler {
		return nil, &InvariantError{Stage: s.Template,
			Detail: "channels must be assigned before building the context"}
	}

	ctx := NewContext()
	ctx.Set("template", s.Template)
	ctx.Set("pid", s.pid)
	ctx.Set("input_channel", s.InputChannel)
	ctx.Set("output_channel", s.OutputChannel)
	ctx.Set("forks", s.Forks())

	switch s.Kind {
	case KindRoot:
		ctx.Set("main_inputs", strings.Join(s.mainInputs, "\n"))
		ctx.Set("secondary_inputs", strings.Join(s.secondaryInputs, "\n"))
		ctx.Set("extra_inputs", strings.Join(s.extraInputs, "\n"))
	case KindCompiler:
		if s.compiled == "" {
			return nil, &ConfigurationError{Stage: s.Template,
				Detail: "compiler stage has no compiled channels"}
		}
		ctx.Set("compile_channels", s.compiled)
	}

	s.ctx = ctx
	return ctx, nil
}
