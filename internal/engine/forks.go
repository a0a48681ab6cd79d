package engine

import (
	"sort"

	"github.com/thanhleviet/flowcraft/pkg/nf"
)

// AddMainSink redirects the stage's main output channel to an additional
// consumer.
//
// The first call renames the externally visible output channel by prefixing
// it with "_", freeing the original name to remain a stable identity for
// consumers wired before consolidation. The fan-out declaration is recomputed
// from the full sink list on every call, so the operator switches from "set"
// to "into" as soon as a second sink arrives.
//
// Main sinks keep insertion order and are never deduplicated: a caller that
// still needs the original channel name live appends it as the last sink.
func (s *Stage) AddMainSink(sink string) error {
	if s.OutputChannel == "" {
		return &InvariantError{Stage: s.Template,
			Detail: "fork requested before output channel was assigned"}
	}

	if len(s.mainForks) == 0 {
		s.OutputChannel = "_" + s.OutputChannel
		s.forks = append(s.forks, nf.Fork{})
		s.mainForkIdx = len(s.forks) - 1
	}
	s.mainForks = append(s.mainForks, sink)

	sinks := make([]string, len(s.mainForks))
	copy(sinks, s.mainForks)
	s.forks[s.mainForkIdx] = nf.Fork{Source: s.OutputChannel, Sinks: sinks}
	return nil
}

// AddSecondarySink fans a non-main channel of this stage out to the given
// sinks. The source is suffixed with the stage position to form the concrete
// channel name. Sinks are deduplicated and sorted so that repeated
// compilations of the same logical graph emit identical declarations
// regardless of insertion order. Declarations append in call order.
func (s *Stage) AddSecondarySink(source string, sinks []string) error {
	if s.pid == "" {
		return &InvariantError{Stage: s.Template,
			Detail: "secondary fork requested before channels were assigned"}
	}
	if len(sinks) == 0 {
		return &ConfigurationError{Stage: s.Template,
			Detail: "secondary fork for " + source + " has no sink channels"}
	}

	s.forks = append(s.forks, canonicalFork(source+"_"+s.pid, sinks))
	return nil
}

// canonicalFork deduplicates and sorts the sink list into the canonical
// emission order.
func canonicalFork(source string, sinks []string) nf.Fork {
	seen := make(map[string]bool, len(sinks))
	out := make([]string, 0, len(sinks))
	for _, sink := range sinks {
		if !seen[sink] {
			seen[sink] = true
			out = append(out, sink)
		}
	}
	sort.Strings(out)
	return nf.Fork{Source: source, Sinks: out}
}
