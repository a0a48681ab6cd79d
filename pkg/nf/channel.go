package nf

import "fmt"

// ChannelDecl is a named channel definition, e.g.
//
//	IN_fastq_raw = Channel.fromFilePairs(params.fastq)
type ChannelDecl struct {
	Name string
	Expr string
}

// Render produces the textual assignment.
func (c ChannelDecl) Render() string {
	return fmt.Sprintf("%s = %s", c.Name, c.Expr)
}

// Mix renders the associative merge of one or more channels:
//
//	STATUS_fastqc_1_1.mix(STATUS_spades_1_2,STATUS_mlst_1_3)
//
// A single channel is returned verbatim. The first element is always the
// left operand. Callers must not pass an empty list.
type Mix struct {
	Channels []string
}

// Render produces the merge expression.
func (m Mix) Render() string {
	if len(m.Channels) == 1 {
		return m.Channels[0]
	}
	out := m.Channels[0] + ".mix("
	for i, c := range m.Channels[1:] {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out + ")"
}
