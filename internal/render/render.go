// Package render turns wired pipeline contexts into the final Nextflow
// program and its configuration file. Component templates are embedded;
// components without a dedicated template fall back to the generic process
// skeleton.
package render

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/thanhleviet/flowcraft/internal/builder"
	"github.com/thanhleviet/flowcraft/internal/engine"
)

//go:embed templates/*.nf.tmpl
var templateFS embed.FS

// Renderer executes the embedded Nextflow templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.nf.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Pipeline renders the complete Nextflow program: the raw input header,
// every stage in definition order, and the compiled status/report sinks.
func (r *Renderer) Pipeline(p *builder.Pipeline) (string, error) {
	var sb strings.Builder

	if err := r.execute(&sb, "header.nf.tmpl", p.Root.Ctx.Map()); err != nil {
		return "", err
	}

	for _, st := range p.Stages {
		name := st.Stage.Template + ".nf.tmpl"
		ctx := st.Ctx.Map()
		if r.tmpl.Lookup(name) == nil {
			// The generic skeleton declares the stage's concrete status and
			// report outputs, so every channel collected by the compilers is
			// produced somewhere in the program.
			name = "process.nf.tmpl"
			ctx["status_outputs"], ctx["report_outputs"] = genericOutputs(st.Stage)
		}
		if err := r.execute(&sb, name, ctx); err != nil {
			return "", err
		}
	}

	if p.Status != nil {
		if err := r.execute(&sb, "status_compiler.nf.tmpl", p.Status.Ctx.Map()); err != nil {
			return "", err
		}
	}
	if p.Report != nil {
		if err := r.execute(&sb, "report_compiler.nf.tmpl", p.Report.Ctx.Map()); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// genericOutputs renders the status and report output declarations for a
// stage without a dedicated template, one line per concrete channel derived
// from the stage's stems.
func genericOutputs(s *engine.Stage) (status, report string) {
	var st []string
	for _, stem := range s.StatusStems {
		sub := strings.TrimPrefix(stem, "STATUS_")
		st = append(st, fmt.Sprintf(
			`    set sample_id, val("%s_%s"), file(".status"), file(".warning"), file(".fail") into %s_%s`,
			s.Position(), sub, stem, s.Position()))
	}
	var rp []string
	for _, stem := range s.ReportStems {
		rp = append(rp, fmt.Sprintf("    file('*.report.json') into %s_%s", stem, s.Position()))
	}
	return strings.Join(st, "\n"), strings.Join(rp, "\n")
}

func (r *Renderer) execute(sb *strings.Builder, name string, ctx map[string]string) error {
	if err := r.tmpl.ExecuteTemplate(sb, name, ctx); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	sb.WriteString("\n")
	return nil
}

// Config renders the nextflow.config holding the documented parameter
// defaults and the per-process resource directives. Entries are sorted so
// regeneration is diffable.
func (r *Renderer) Config(p *builder.Pipeline) (string, error) {
	var sb strings.Builder

	sb.WriteString("params {\n")
	for _, name := range sortedKeys(p.Params) {
		spec := p.Params[name]
		sb.WriteString(fmt.Sprintf("    /*\n    %s\n    */\n", wrapDescription(spec.Description)))
		sb.WriteString(fmt.Sprintf("    %s = %s\n", name, spec.Default))
	}
	sb.WriteString("}\n\nprocess {\n")

	procs := make([]string, 0, len(p.Directives))
	for name := range p.Directives {
		procs = append(procs, name)
	}
	sort.Strings(procs)
	for _, name := range procs {
		d := p.Directives[name]
		if d.CPUs > 0 {
			sb.WriteString(fmt.Sprintf("    $%s.cpus = %d\n", name, d.CPUs))
		}
		if d.Memory != "" {
			sb.WriteString(fmt.Sprintf("    $%s.memory = %s\n", name, d.Memory))
		}
		if d.Container != "" {
			container := d.Container
			if d.Version != "" {
				container += ":" + d.Version
			}
			sb.WriteString(fmt.Sprintf("    $%s.container = '%s'\n", name, container))
		}
	}
	sb.WriteString("}\n")

	return sb.String(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// wrapDescription folds long descriptions at roughly 70 columns for the
// generated config comments.
func wrapDescription(desc string) string {
	words := strings.Fields(desc)
	var lines []string
	var line string
	for _, w := range words {
		if line != "" && len(line)+len(w)+1 > 70 {
			lines = append(lines, line)
			line = w
			continue
		}
		if line == "" {
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n    ")
}
