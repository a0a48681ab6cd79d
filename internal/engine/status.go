package engine

import "github.com/thanhleviet/flowcraft/pkg/nf"

// CompileChannels merges the collected channel names into one compiled
// channel expression: a single name verbatim, otherwise
// "first.mix(rest...)" with the first element as the left operand. An empty
// list is a configuration error, since a compiled sink with nothing to
// compile cannot appear in a valid pipeline.
func CompileChannels(channels []string) (string, error) {
	if len(channels) == 0 {
		return "", &ConfigurationError{
			Detail: "at least one status channel must be provided to compile a sink",
		}
	}
	return nf.Mix{Channels: channels}.Render(), nil
}

// SetCompilerChannels compiles the channel list and stores the expression
// for the stage context. Only valid on compiler stages.
func (s *Stage) SetCompilerChannels(channels []string) error {
	if s.Kind != KindCompiler {
		return &InvariantError{Stage: s.Template,
			Detail: "compiler channels set on a non-compiler stage"}
	}
	if len(channels) == 0 {
		return &ConfigurationError{Stage: s.Template,
			Detail: "at least one status channel must be provided to include this stage"}
	}
	compiled, err := CompileChannels(channels)
	if err != nil {
		return err
	}
	s.compiled = compiled
	return nil
}
