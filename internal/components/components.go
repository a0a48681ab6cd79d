// Package components holds the per-template configuration table: the
// declared input/output types, link anchors, status channels, parameters
// and resource directives of every pipeline component flowcraft can
// generate. The table is data; component behavior lives in the engine.
package components

import (
	"sort"

	"github.com/thanhleviet/flowcraft/internal/engine"
	"github.com/thanhleviet/flowcraft/internal/registry"
)

// Directive specifies the Nextflow resource directives of one process in a
// component template. Values are emitted into the generated config.
type Directive struct {
	CPUs      int
	Memory    string
	Container string
	Version   string
}

// SecondaryInput declares a parameter-driven channel a component needs at
// the top of the generated program.
type SecondaryInput struct {
	Param   string
	Channel string
}

// Def is the configuration record for one component template.
type Def struct {
	Name         string
	Input        string
	Output       string
	IgnoreType   bool
	IgnorePID    bool
	Dependencies []string

	// LinkStart lists advertised fan-out anchors; nil disables them.
	LinkStart []string
	LinkEnd   []engine.LinkEnd

	// StatusStems overrides the default single STATUS_{name} stem for
	// multi-process templates. ReportStems is set for components that
	// publish report data.
	StatusStems []string
	ReportStems []string

	Params          map[string]registry.ParamSpec
	Directives      map[string]Directive
	SecondaryInputs []SecondaryInput
}

// Get returns the definition for a template name.
func Get(name string) (Def, bool) {
	def, ok := table[name]
	return def, ok
}

// Names returns all component names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStage builds an engine stage from a definition, applying its type
// pair, link anchors and channel stems.
func NewStage(def Def) *engine.Stage {
	s := engine.NewStage(def.Name, engine.KindStandard)
	s.InputType = def.Input
	s.OutputType = def.Output
	s.IgnoreType = def.IgnoreType
	s.IgnorePID = def.IgnorePID
	s.Dependencies = append([]string(nil), def.Dependencies...)
	if def.LinkStart != nil {
		s.LinkStart = append([]string(nil), def.LinkStart...)
	} else {
		s.LinkStart = nil
	}
	s.LinkEnd = append([]engine.LinkEnd(nil), def.LinkEnd...)
	if def.StatusStems != nil {
		s.StatusStems = append([]string(nil), def.StatusStems...)
	}
	s.ReportStems = append([]string(nil), def.ReportStems...)
	for name, spec := range def.Params {
		s.Params[name] = spec
	}
	return s
}
