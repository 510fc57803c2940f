package gpr

import (
	"fmt"
	"sort"
	"strings"
)

type nodeKind int

const (
	kindGene nodeKind = iota
	kindAnd
	kindOr
)

type node struct {
	kind     nodeKind
	gene     string
	children []*node
}

// Rule is a parsed gene-reaction rule. The zero value is the empty rule.
type Rule struct {
	text string
	root *node
}

// Parse parses a gene-reaction rule. Operators must be separated by
// whitespace; parentheses need not be.
// Returns ErrSyntax with the offending token position.
func Parse(rule string) (*Rule, error) {
	toks := tokenize(rule)
	if len(toks) == 0 {
		return &Rule{text: strings.TrimSpace(rule)}, nil
	}
	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("Parse: unexpected %q at token %d: %w", p.toks[p.pos], p.pos, ErrSyntax)
	}

	return &Rule{text: strings.TrimSpace(rule), root: root}, nil
}

// String returns the rule text as given to Parse, trimmed.
func (r *Rule) String() string {
	return r.text
}

// Empty reports whether the rule references no gene.
func (r *Rule) Empty() bool {
	return r.root == nil
}

// Genes returns the sorted distinct gene identifiers referenced by the rule.
func (r *Rule) Genes() []string {
	seen := make(map[string]struct{})
	var walk func(*node)
	walk = func(nd *node) {
		if nd == nil {
			return
		}
		if nd.kind == kindGene {
			seen[nd.gene] = struct{}{}
			return
		}
		for _, c := range nd.children {
			walk(c)
		}
	}
	walk(r.root)

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)

	return out
}

// Active reports whether the rule still holds when every gene for which
// knocked returns true is removed. The empty rule is always active.
func (r *Rule) Active(knocked func(gene string) bool) bool {
	if r.root == nil {
		return true
	}
	return eval(r.root, knocked)
}

func eval(nd *node, knocked func(string) bool) bool {
	switch nd.kind {
	case kindGene:
		return !knocked(nd.gene)
	case kindAnd:
		for _, c := range nd.children {
			if !eval(c, knocked) {
				return false
			}
		}
		return true
	default:
		for _, c := range nd.children {
			if eval(c, knocked) {
				return true
			}
		}
		return false
	}
}

// tokenize splits on whitespace and isolates parentheses.
func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, ch := range s {
		switch {
		case ch == '(' || ch == ')':
			flush()
			toks = append(toks, string(ch))
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			cur.WriteRune(ch)
		}
	}
	flush()

	return toks
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *parser) parseOr() (*node, error) {
	return p.parseChain(kindOr, "or", p.parseAnd)
}

func (p *parser) parseAnd() (*node, error) {
	return p.parseChain(kindAnd, "and", p.parseFactor)
}

func (p *parser) parseChain(kind nodeKind, keyword string, next func() (*node, error)) (*node, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	for strings.EqualFold(p.peek(), keyword) {
		p.pos++
		nd, err := next()
		if err != nil {
			return nil, err
		}
		children = append(children, nd)
	}
	if len(children) == 1 {
		return first, nil
	}

	return &node{kind: kind, children: children}, nil
}

func (p *parser) parseFactor() (*node, error) {
	tok := p.peek()
	switch {
	case tok == "":
		return nil, fmt.Errorf("Parse: unexpected end of rule: %w", ErrSyntax)
	case tok == "(":
		p.pos++
		nd, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("Parse: missing ')' at token %d: %w", p.pos, ErrSyntax)
		}
		p.pos++
		return nd, nil
	case tok == ")" || strings.EqualFold(tok, "and") || strings.EqualFold(tok, "or"):
		return nil, fmt.Errorf("Parse: unexpected %q at token %d: %w", tok, p.pos, ErrSyntax)
	default:
		p.pos++
		return &node{kind: kindGene, gene: tok}, nil
	}
}
