// Package recipes maps curated names to full pipeline definitions, so
// common workflows can be built without hand-writing the expression.
// Recipes can also be loaded from YAML files on disk.
package recipes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thanhleviet/flowcraft/internal/builder"
	"github.com/thanhleviet/flowcraft/internal/components"
	"github.com/thanhleviet/flowcraft/internal/parser"
)

// ExtraInput mirrors builder.ExtraInputSpec with YAML tags.
type ExtraInput struct {
	Param   string   `yaml:"param"`
	Type    string   `yaml:"type,omitempty"`
	Targets []string `yaml:"targets"`
}

// Recipe is a named pipeline definition.
type Recipe struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Pipeline    string            `yaml:"pipeline"`
	ExtraInputs []ExtraInput      `yaml:"extra_inputs,omitempty"`
	Params      map[string]string `yaml:"params,omitempty"`
}

// ExtraSpecs converts the recipe's extra inputs to builder specs.
func (r *Recipe) ExtraSpecs() []builder.ExtraInputSpec {
	specs := make([]builder.ExtraInputSpec, 0, len(r.ExtraInputs))
	for _, e := range r.ExtraInputs {
		specs = append(specs, builder.ExtraInputSpec{
			Param:   e.Param,
			Type:    e.Type,
			Targets: e.Targets,
		})
	}
	return specs
}

// Validate parses the pipeline expression and checks every component
// name against the table.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe has no name")
	}
	if strings.TrimSpace(r.Pipeline) == "" {
		return fmt.Errorf("recipe %q has no pipeline", r.Name)
	}
	graph, err := parser.Parse(r.Pipeline)
	if err != nil {
		return fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	for _, node := range graph.Nodes {
		if _, ok := components.Get(node.Template); !ok {
			return fmt.Errorf("recipe %q: unknown component %q", r.Name, node.Template)
		}
	}
	return nil
}

var builtin = map[string]Recipe{
	"innuca": {
		Name:        "innuca",
		Description: "Reads quality control, assembly and assembly polishing.",
		Pipeline:    "integrity_coverage fastqc_trimmomatic spades assembly_mapping pilon mlst",
	},
	"assembly": {
		Name:        "assembly",
		Description: "Assembles the input reads with both SPAdes and skesa.",
		Pipeline:    "integrity_coverage fastqc_trimmomatic (spades | skesa)",
	},
	"typing": {
		Name:        "typing",
		Description: "Assembly plus MLST and cgMLST allele calling.",
		Pipeline:    "integrity_coverage fastqc_trimmomatic spades mlst chewbbaca",
	},
	"resistance": {
		Name:        "resistance",
		Description: "Assembly plus antimicrobial resistance gene screening.",
		Pipeline:    "integrity_coverage fastqc_trimmomatic spades abricate",
	},
	"plasmids": {
		Name:        "plasmids",
		Description: "Read mapping against the pATLAS plasmid database.",
		Pipeline:    "integrity_coverage fastqc_trimmomatic patlas_mapping",
	},
}

// Builtin returns the recipe registered under name.
func Builtin(name string) (Recipe, bool) {
	r, ok := builtin[name]
	return r, ok
}

// Names lists the builtin recipe names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads and validates a single recipe from a YAML file. When the
// recipe carries no name, the filename without extension is used.
func LoadFile(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("read recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("parse recipe YAML: %w", err)
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := r.Validate(); err != nil {
		return Recipe{}, err
	}
	return r, nil
}

// LoadDir loads every *.yml and *.yaml recipe under dir, sorted by name.
// Recipes loaded from disk shadow builtins with the same name at the
// caller's discretion; this function only reports what it found.
func LoadDir(dir string) ([]Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read recipe dir: %w", err)
	}

	var recipes []Recipe
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		r, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}

	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}
