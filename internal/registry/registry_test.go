package registry

import (
	"strings"
	"testing"
)

func TestDefault_ClosedVocabulary(t *testing.T) {
	reg := Default()

	want := []string{"accessions", "fasta", "fastq"}
	got := reg.Types()
	if len(got) != len(want) {
		t.Fatalf("Types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, ok := reg.Lookup("bam"); ok {
		t.Error("Lookup(bam) succeeded, want miss")
	}
}

func TestDescriptor_Substitution(t *testing.T) {
	reg := Default()
	fastq, ok := reg.Lookup("fastq")
	if !ok {
		t.Fatal("fastq descriptor missing")
	}

	decl := fastq.ChannelDecl("myReads")
	if !strings.Contains(decl, "Channel.fromFilePairs(params.myReads)") {
		t.Errorf("ChannelDecl = %q, parameter not substituted", decl)
	}
	if strings.Contains(decl, "%[1]s") {
		t.Errorf("ChannelDecl = %q, slot left unfilled", decl)
	}

	checks := fastq.Checks("myReads")
	if !strings.Contains(checks, `if (!params.myReads){ exit 1, "'myReads' parameter missing"}`) {
		t.Errorf("Checks = %q, parameter not substituted", checks)
	}
}

func TestDescriptor_ParamSpec(t *testing.T) {
	reg := Default()
	acc, _ := reg.Lookup("accessions")
	spec := acc.ParamSpec()
	if spec.Default != "null" {
		t.Errorf("Default = %q, want null", spec.Default)
	}
	if spec.Description == "" {
		t.Error("Description is empty")
	}
}
