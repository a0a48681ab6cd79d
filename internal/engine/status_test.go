package engine

import (
	"errors"
	"testing"
)

func TestCompileChannels(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		want     string
	}{
		{"single channel verbatim", []string{"S1"}, "S1"},
		{"two channels", []string{"S1", "S2"}, "S1.mix(S2)"},
		{"three channels keep order", []string{"S1", "S2", "S3"}, "S1.mix(S2,S3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileChannels(tt.channels)
			if err != nil {
				t.Fatalf("CompileChannels(%v): %v", tt.channels, err)
			}
			if got != tt.want {
				t.Errorf("CompileChannels(%v) = %q, want %q", tt.channels, got, tt.want)
			}
		})
	}
}

func TestCompileChannels_EmptyListFails(t *testing.T) {
	_, err := CompileChannels(nil)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("CompileChannels(nil) error = %v, want ConfigurationError", err)
	}
}

func TestSetCompilerChannels(t *testing.T) {
	s := NewStage("status_compiler", KindCompiler)
	if err := s.SetCompilerChannels([]string{"STATUS_fastqc_1_1", "STATUS_spades_1_2"}); err != nil {
		t.Fatalf("SetCompilerChannels: %v", err)
	}

	ctx, err := s.BuildContext()
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	got, _ := ctx.Get("compile_channels")
	if want := "STATUS_fastqc_1_1.mix(STATUS_spades_1_2)"; got != want {
		t.Errorf("compile_channels = %q, want %q", got, want)
	}
}

func TestSetCompilerChannels_EmptyListFails(t *testing.T) {
	s := NewStage("status_compiler", KindCompiler)
	err := s.SetCompilerChannels(nil)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("SetCompilerChannels(nil) error = %v, want ConfigurationError", err)
	}
}

func TestSetCompilerChannels_NonCompilerStage(t *testing.T) {
	s := newWiredStage(t, "fastqc", 1, 1)
	err := s.SetCompilerChannels([]string{"STATUS_fastqc_1_1"})
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("SetCompilerChannels error = %v, want InvariantError", err)
	}
}
