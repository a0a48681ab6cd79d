package components

import (
	"testing"
)

func TestGetKnownComponent(t *testing.T) {
	def, ok := Get("integrity_coverage")
	if !ok {
		t.Fatal("integrity_coverage not in table")
	}
	if def.Input != "fastq" || def.Output != "fastq" {
		t.Errorf("types = %s->%s, want fastq->fastq", def.Input, def.Output)
	}
	if len(def.LinkStart) != 3 {
		t.Errorf("link starts = %v, want 3 anchors", def.LinkStart)
	}
}

func TestGetUnknownComponent(t *testing.T) {
	if _, ok := Get("nosuch"); ok {
		t.Error("expected lookup miss for unknown component")
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != len(table) {
		t.Fatalf("names = %d entries, table has %d", len(names), len(table))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestDefsAreConsistent(t *testing.T) {
	for name, def := range table {
		if def.Name != name {
			t.Errorf("%s: Name field = %q", name, def.Name)
		}
		if def.Input == "" {
			t.Errorf("%s: missing input type", name)
		}
		for _, end := range def.LinkEnd {
			if end.Anchor == "" || end.Alias == "" {
				t.Errorf("%s: incomplete link end %+v", name, end)
			}
		}
		for proc, d := range def.Directives {
			if proc == "" {
				t.Errorf("%s: directive with empty process name", name)
			}
			if d.Version != "" && d.Container == "" {
				t.Errorf("%s: directive %s has a version but no container", name, proc)
			}
		}
	}
}

func TestNewStageAppliesDef(t *testing.T) {
	def, _ := Get("fastqc_trimmomatic")
	s := NewStage(def)

	if s.Template != "fastqc_trimmomatic" {
		t.Errorf("template = %q", s.Template)
	}
	if len(s.StatusStems) != 2 {
		t.Fatalf("status stems = %v, want the fastqc and trimmomatic stems", s.StatusStems)
	}
	if s.StatusStems[0] != "STATUS_fastqc" || s.StatusStems[1] != "STATUS_trimmomatic" {
		t.Errorf("status stems = %v", s.StatusStems)
	}
	if len(s.LinkEnd) != 1 || s.LinkEnd[0].Anchor != "SIDE_phred" {
		t.Errorf("link ends = %+v", s.LinkEnd)
	}
	if _, ok := s.Params["adapters"]; !ok {
		t.Error("adapters param not carried onto the stage")
	}
}

func TestNewStageDefaultStatusStem(t *testing.T) {
	def, _ := Get("spades")
	s := NewStage(def)

	if len(s.StatusStems) != 1 || s.StatusStems[0] != "STATUS_spades" {
		t.Errorf("status stems = %v, want the default single stem", s.StatusStems)
	}
}

func TestNewStageEmptyStatusOverride(t *testing.T) {
	// seq_typing declares an explicit empty stem list, which must survive
	// as "publish nothing" rather than falling back to the default.
	def, _ := Get("seq_typing")
	s := NewStage(def)

	if len(s.StatusStems) != 0 {
		t.Errorf("status stems = %v, want none", s.StatusStems)
	}
}

func TestNewStageTerminalFlags(t *testing.T) {
	def, _ := Get("abricate")
	s := NewStage(def)

	if !s.IgnoreType || !s.IgnorePID {
		t.Errorf("ignore flags = (%v, %v), want both set", s.IgnoreType, s.IgnorePID)
	}
	if s.LinkStart != nil {
		t.Errorf("link starts = %v, want disabled", s.LinkStart)
	}
}
