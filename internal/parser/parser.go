// Package parser turns a pipeline expression string into an ordered,
// lane-annotated stage graph. The expression lists component names separated
// by whitespace; parentheses open a fork whose branches are separated by
// pipes and each branch continues in its own lane:
//
//	integrity_coverage fastqc_trimmomatic (spades | skesa abricate)
//
// Forks terminate the enclosing lane, so nothing may follow a closing
// parenthesis in the same branch. Nesting is allowed.
package parser

import (
	"fmt"
	"strings"
)

// RootParent marks a node connected to the synthetic root stage.
const RootParent = -1

// Node is one stage occurrence in the parsed graph. Parent indexes the
// upstream node in Graph.Nodes, or RootParent for first stages.
type Node struct {
	Template string
	Lane     int
	Parent   int
}

// Graph is the parsed pipeline: nodes in definition order plus the number
// of lanes. Definition order is the deterministic traversal order used for
// position assignment downstream.
type Graph struct {
	Nodes     []Node
	LaneCount int
}

// Children returns the indexes of the nodes whose parent is idx, in
// definition order. Pass RootParent for the root's children.
func (g *Graph) Children(idx int) []int {
	var out []int
	for i, n := range g.Nodes {
		if n.Parent == idx {
			out = append(out, i)
		}
	}
	return out
}

type parser struct {
	tokens []string
	pos    int
	graph  *Graph
}

// Parse parses a pipeline expression.
func Parse(expr string) (*Graph, error) {
	tokens := tokenize(expr)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty pipeline expression")
	}

	p := &parser{tokens: tokens, graph: &Graph{LaneCount: 1}}
	if err := p.sequence(1, RootParent); err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected %q after position %d: unbalanced parentheses?",
			p.tokens[p.pos], p.pos)
	}
	if len(p.graph.Nodes) == 0 {
		return nil, fmt.Errorf("pipeline expression has no stages")
	}
	return p.graph, nil
}

// tokenize splits the expression into names and the three delimiters.
func tokenize(expr string) []string {
	for _, d := range []string{"(", ")", "|"} {
		expr = strings.ReplaceAll(expr, d, " "+d+" ")
	}
	return strings.Fields(expr)
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

// sequence parses a chain of stages in one lane until a delimiter or the
// end of input. parent is the node index feeding the chain.
func (p *parser) sequence(lane, parent int) error {
	last := parent
	forked := false

	for {
		tok, ok := p.peek()
		if !ok || tok == ")" || tok == "|" {
			return nil
		}

		switch tok {
		case "(":
			p.pos++
			if err := p.fork(lane, last); err != nil {
				return err
			}
			forked = true
		default:
			if forked {
				return fmt.Errorf("stage %q found after a fork: stages must continue inside a fork branch", tok)
			}
			p.graph.Nodes = append(p.graph.Nodes, Node{Template: tok, Lane: lane, Parent: last})
			last = len(p.graph.Nodes) - 1
			p.pos++
		}
	}
}

// fork parses the branches of an open fork. Each branch gets a fresh lane.
func (p *parser) fork(lane, parent int) error {
	if parent == RootParent {
		return fmt.Errorf("pipeline cannot start with a fork")
	}

	branches := 0
	for {
		before := len(p.graph.Nodes)
		p.graph.LaneCount++
		if err := p.sequence(p.graph.LaneCount, parent); err != nil {
			return err
		}
		if len(p.graph.Nodes) == before {
			return fmt.Errorf("empty fork branch after %q", p.graph.Nodes[parent].Template)
		}
		branches++

		tok, ok := p.peek()
		if !ok {
			return fmt.Errorf("unterminated fork after %q", p.graph.Nodes[parent].Template)
		}
		switch tok {
		case "|":
			p.pos++
		case ")":
			p.pos++
			if branches < 2 {
				return fmt.Errorf("fork after %q has a single branch: use a plain sequence instead",
					p.graph.Nodes[parent].Template)
			}
			return nil
		}
	}
}
