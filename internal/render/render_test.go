package render

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/thanhleviet/flowcraft/internal/builder"
	"github.com/thanhleviet/flowcraft/internal/registry"
)

func buildPipeline(t *testing.T, expr string) *builder.Pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := builder.New(registry.Default(), logger)
	p, err := b.Build(expr, nil)
	if err != nil {
		t.Fatalf("build %q: %v", expr, err)
	}
	return p
}

func TestPipelineRendersEveryStage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := buildPipeline(t, "integrity_coverage fastqc_trimmomatic spades")

	out, err := r.Pipeline(p)
	if err != nil {
		t.Fatalf("render pipeline: %v", err)
	}

	for _, want := range []string{
		"#!/usr/bin/env nextflow",
		"IN_fastq_raw = Channel.fromFilePairs(params.fastq)",
		"IN_fastq_raw.set{ integrity_coverage_in_1_1 }",
		"process integrity_coverage_1_1 {",
		"process fastqc_1_2 {",
		"process trimmomatic_1_2 {",
		"process spades_1_3 {",
		"SIDE_phred_1_1.set{ SIDE_phred }",
		"SIDE_max_len_1_1.set{ SIDE_max_len }",
		"process status_compiler {",
		"STATUS_integrity_coverage_1_1.mix(STATUS_fastqc_1_2,STATUS_trimmomatic_1_2,STATUS_spades_1_3).collect()",
		"process report_compiler {",
		"REPORT_coverage_1_1.collect()",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered pipeline missing %q", want)
		}
	}
}

func TestPipelineGenericTemplateFallback(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := buildPipeline(t, "fastqc fastqc")

	out, err := r.Pipeline(p)
	if err != nil {
		t.Fatalf("render pipeline: %v", err)
	}

	// The component carries no dedicated template, so both occurrences
	// render through the generic process skeleton.
	for _, want := range []string{
		"process fastqc_1_1 {",
		"process fastqc_1_2 {",
		`template "fastqc.py"`,
		"into STATUS_fastqc_1_1",
		"into STATUS_fastqc_1_2",
		"from fastqc_out_1_1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered pipeline missing %q", want)
		}
	}
}

func TestPipelineCompiledChannelsAreProduced(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := buildPipeline(t, "integrity_coverage fastqc_trimmomatic spades assembly_mapping pilon mlst")

	out, err := r.Pipeline(p)
	if err != nil {
		t.Fatalf("render pipeline: %v", err)
	}

	// Stages with custom stems render through the generic skeleton; their
	// status and report outputs must still declare the concrete channels.
	for _, want := range []string{
		"into STATUS_am_1_4",
		"into STATUS_amp_1_4",
		"into REPORT_assembly_1_5",
		"into REPORT_mlst_1_6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered pipeline missing output declaration %q", want)
		}
	}

	// Every channel the compilers mix is produced somewhere in the program.
	for _, st := range p.Stages {
		channels := append(st.Stage.StatusChannels(), st.Stage.ReportChannels()...)
		for _, ch := range channels {
			if !strings.Contains(out, "into "+ch) {
				t.Errorf("compiled channel %s has no producing output declaration", ch)
			}
		}
	}
}

func TestPipelineIsDeterministic(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	const expr = "integrity_coverage (spades mlst | skesa)"
	first, err := r.Pipeline(buildPipeline(t, expr))
	if err != nil {
		t.Fatalf("render pipeline: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Pipeline(buildPipeline(t, expr))
		if err != nil {
			t.Fatalf("render pipeline: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestConfigParamsAndDirectives(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := buildPipeline(t, "integrity_coverage spades")

	out, err := r.Config(p)
	if err != nil {
		t.Fatalf("render config: %v", err)
	}

	for _, want := range []string{
		"params {",
		"fastq = 'fastq/*_{1,2}.*'",
		"genomeSize = 1",
		"spadesKmers = 'auto'",
		"process {",
		"$spades.cpus = 4",
		"$spades.memory = { 5.GB * task.attempt }",
		"$spades.container = 'flowcraft/spades:3.11.1-1'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered config missing %q", want)
		}
	}

	// Params are emitted sorted.
	if strings.Index(out, "fastq =") > strings.Index(out, "genomeSize =") {
		t.Error("params not emitted in sorted order")
	}
}
