package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thanhleviet/flowcraft/internal/builder"
	"github.com/thanhleviet/flowcraft/internal/recipes"
	"github.com/thanhleviet/flowcraft/internal/registry"
	"github.com/thanhleviet/flowcraft/internal/render"
	"github.com/thanhleviet/flowcraft/internal/store"
)

func newBuildCmd() *cobra.Command {
	var (
		flagRecipe     string
		flagOutput     string
		flagExtraInput []string
		flagNoHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "build [pipeline expression]",
		Short: "Build a Nextflow pipeline from an expression or recipe",
		Long: `Build compiles a pipeline expression such as

    flowcraft build "integrity_coverage fastqc_trimmomatic (spades | skesa)"

into a Nextflow program plus its nextflow.config. Use --recipe to build a
curated pipeline by name instead of writing the expression by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, extras, recipe, err := resolvePipeline(args, flagRecipe, cfg.RecipeDir)
			if err != nil {
				return err
			}
			for _, raw := range flagExtraInput {
				spec, err := parseExtraInput(raw)
				if err != nil {
					return err
				}
				extras = append(extras, spec)
			}

			b := builder.New(registry.Default(), logger)
			p, err := b.Build(expr, extras)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}
			if err := applyRecipeParams(p, recipe.Params); err != nil {
				return err
			}

			r, err := render.New()
			if err != nil {
				return err
			}
			program, err := r.Pipeline(p)
			if err != nil {
				return err
			}
			nfConfig, err := r.Config(p)
			if err != nil {
				return err
			}

			outFile := filepath.Join(cfg.OutputDir, flagOutput)
			configFile := filepath.Join(filepath.Dir(outFile), "nextflow.config")
			if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(outFile, []byte(program), 0o644); err != nil {
				return fmt.Errorf("write pipeline: %w", err)
			}
			if err := os.WriteFile(configFile, []byte(nfConfig), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fmt.Printf("Pipeline written to %s\n", outFile)
			fmt.Printf("Configuration written to %s\n", configFile)

			if !flagNoHistory {
				if err := recordBuild(cmd.Context(), p, recipe.Name, outFile, configFile); err != nil {
					// History is best effort; the pipeline is already on disk.
					logger.Warn("record build history", "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagRecipe, "recipe", "r", "", "Build a named recipe instead of an expression")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "pipeline.nf", "Output pipeline filename")
	cmd.Flags().StringArrayVar(&flagExtraInput, "extra-input", nil,
		"Extra raw input as param[:type]=target1,target2 (repeatable)")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording the build in the history database")

	return cmd
}

// resolvePipeline returns the expression and extra inputs to build, either
// from the positional argument or from a recipe. The returned recipe is the
// zero value when building a plain expression.
func resolvePipeline(args []string, recipeName, recipeDir string) (string, []builder.ExtraInputSpec, recipes.Recipe, error) {
	var none recipes.Recipe
	if recipeName == "" {
		if len(args) != 1 {
			return "", nil, none, fmt.Errorf("provide a pipeline expression or --recipe")
		}
		return args[0], nil, none, nil
	}
	if len(args) > 0 {
		return "", nil, none, fmt.Errorf("--recipe and a pipeline expression are mutually exclusive")
	}

	if recipeDir != "" {
		loaded, err := recipes.LoadDir(recipeDir)
		if err != nil {
			return "", nil, none, err
		}
		for _, r := range loaded {
			if r.Name == recipeName {
				return r.Pipeline, r.ExtraSpecs(), r, nil
			}
		}
	}
	if r, ok := recipes.Builtin(recipeName); ok {
		return r.Pipeline, r.ExtraSpecs(), r, nil
	}
	return "", nil, none, fmt.Errorf("unknown recipe %q (see 'flowcraft recipes')", recipeName)
}

// applyRecipeParams overrides the default values of the pipeline's
// parameters with the recipe's params block, so the overrides land in the
// generated nextflow.config and the recorded history.
func applyRecipeParams(p *builder.Pipeline, overrides map[string]string) error {
	for name, value := range overrides {
		spec, ok := p.Params[name]
		if !ok {
			return fmt.Errorf("recipe parameter %q does not match any pipeline parameter", name)
		}
		spec.Default = value
		p.Params[name] = spec
	}
	return nil
}

// parseExtraInput parses param[:type]=target1,target2.
func parseExtraInput(raw string) (builder.ExtraInputSpec, error) {
	name, targets, ok := strings.Cut(raw, "=")
	if !ok || name == "" || targets == "" {
		return builder.ExtraInputSpec{}, fmt.Errorf("malformed extra input %q, want param[:type]=target1,target2", raw)
	}
	spec := builder.ExtraInputSpec{Param: name}
	if param, typ, ok := strings.Cut(name, ":"); ok {
		spec.Param = param
		spec.Type = typ
	}
	for _, target := range strings.Split(targets, ",") {
		target = strings.TrimSpace(target)
		if target == "" {
			return builder.ExtraInputSpec{}, fmt.Errorf("malformed extra input %q: empty target", raw)
		}
		spec.Targets = append(spec.Targets, target)
	}
	return spec, nil
}

func recordBuild(ctx context.Context, p *builder.Pipeline, recipeName, outFile, configFile string) error {
	st, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	var components []string
	for _, s := range p.Stages {
		components = append(components, s.Stage.Template)
	}
	params := make(map[string]string, len(p.Params))
	for name, spec := range p.Params {
		params[name] = spec.Default
	}

	return st.CreateBuild(ctx, &store.Build{
		ID:         store.NewBuildID(),
		Recipe:     recipeName,
		Pipeline:   p.Expr,
		OutputFile: outFile,
		ConfigFile: configFile,
		Components: components,
		Params:     params,
		CreatedAt:  time.Now().UTC(),
	})
}
