// Package mathtext parses the subset of TeX math used in
// figure labels ("$\Delta^{*}(z_0, R)$") and lays it out
// as positioned glyphs and rules.
package mathtext

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/benoitkugler/figtemplate/figfont"
)

// ErrorMode is the for setting how the parser reacts to unknown commands
type ErrorMode uint8

const (
	// IgnoreErrorMode renders unknown commands literally
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and renders unknown commands literally
	WarnErrorMode
	// StrictErrorMode returns an error on unknown commands
	StrictErrorMode
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnbalancedGroup = errors.New("unbalanced group")
	ErrMissingArgument = errors.New("missing argument")
	ErrDoubleScript    = errors.New("double script")
	ErrUnclosedMath    = errors.New("unclosed math mode")
)

// Node is an element of a parsed expression:
// Symbol, Space, List, Scripts or Bar.
type Node interface {
	isNode()
}

// Symbol is one character, with its slant already decided.
type Symbol struct {
	R     rune
	Slant figfont.Slant
	Punct bool // math punctuation, followed by a thin space
}

// Space is an horizontal space, in em.
type Space float64

// List is an horizontal sequence.
type List []Node

// Scripts attaches a superscript and/or a subscript to a base.
// Sup and Sub may be nil.
type Scripts struct {
	Base, Sup, Sub Node
}

// Bar draws an horizontal line over its body (\bar, \overline).
type Bar struct {
	Body Node
}

func (Symbol) isNode()  {}
func (Space) isNode()   {}
func (List) isNode()    {}
func (Scripts) isNode() {}
func (Bar) isNode()     {}

var symbols = map[string]rune{
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ', "epsilon": 'ϵ', "varepsilon": 'ε',
	"zeta": 'ζ', "eta": 'η', "theta": 'θ', "iota": 'ι', "kappa": 'κ', "lambda": 'λ',
	"mu": 'μ', "nu": 'ν', "xi": 'ξ', "pi": 'π', "rho": 'ρ', "sigma": 'σ', "tau": 'τ',
	"upsilon": 'υ', "phi": 'ϕ', "varphi": 'φ', "chi": 'χ', "psi": 'ψ', "omega": 'ω',
	"Gamma": 'Γ', "Delta": 'Δ', "Theta": 'Θ', "Lambda": 'Λ', "Xi": 'Ξ', "Pi": 'Π',
	"Sigma": 'Σ', "Upsilon": 'Υ', "Phi": 'Φ', "Psi": 'Ψ', "Omega": 'Ω',
	"partial": '∂', "infty": '∞', "nabla": '∇', "cdot": '·', "times": '×', "pm": '±',
	"ast": '∗', "star": '⋆', "circ": '∘', "in": '∈', "leq": '≤', "geq": '≥', "neq": '≠',
	"to": '→', "mapsto": '↦', "emptyset": '∅', "setminus": '∖', "cup": '∪', "cap": '∩',
}

// spaces, in em
var spaces = map[string]Space{
	",": 3. / 18, ":": 4. / 18, ">": 4. / 18, ";": 5. / 18, " ": 1. / 3, "quad": 1, "qquad": 2,
	"!": -3. / 18,
}

// TeX sets lower case greek and latin letters in italic,
// digits and upper case greek upright.
func mathSlant(r rune) figfont.Slant {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return figfont.Italic
	case unicode.Is(unicode.Greek, r) && unicode.IsLower(r):
		return figfont.Italic
	case r == '∂':
		return figfont.Italic
	}
	return figfont.Regular
}

func isMathPunct(r rune) bool { return r == ',' || r == ';' }

// PlainText returns the text as upright symbols, without
// interpreting TeX markup.
func PlainText(s string) List {
	out := make(List, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, Symbol{R: r})
	}
	return out
}

type parser struct {
	src  []rune
	pos  int
	mode ErrorMode
}

// Parse reads a label mixing plain text and $...$ math.
func Parse(s string, mode ErrorMode) (List, error) {
	p := parser{src: []rune(s), mode: mode}
	var out List
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case r == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '$':
			out = append(out, Symbol{R: '$'})
			p.pos += 2
		case r == '$':
			p.pos++
			math, err := p.parseList(true)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) || p.src[p.pos] != '$' {
				return nil, ErrUnclosedMath
			}
			p.pos++
			out = append(out, math)
		default:
			out = append(out, Symbol{R: r})
			p.pos++
		}
	}
	return out, nil
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// parseList reads atoms until '$' (at top level) or '}' (in a group)
func (p *parser) parseList(top bool) (List, error) {
	var out List
	for {
		r, ok := p.peek()
		if !ok {
			if top {
				return out, nil // the caller reports the missing '$'
			}
			return nil, ErrUnbalancedGroup
		}
		switch r {
		case '$':
			if !top {
				return nil, ErrUnbalancedGroup
			}
			return out, nil
		case '}':
			if top {
				return nil, ErrUnbalancedGroup
			}
			return out, nil
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom == nil { // ignored white space
			continue
		}
		atom, err = p.parseScripts(atom)
		if err != nil {
			return nil, err
		}
		out = append(out, atom)
	}
}

// parseScripts attaches the following ^ and _ to base, if any.
func (p *parser) parseScripts(base Node) (Node, error) {
	var sc Scripts
	for {
		r, ok := p.peek()
		if !ok || (r != '^' && r != '_') {
			break
		}
		p.pos++
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		if r == '^' {
			if sc.Sup != nil {
				return nil, fmt.Errorf("%w: superscript", ErrDoubleScript)
			}
			sc.Sup = arg
		} else {
			if sc.Sub != nil {
				return nil, fmt.Errorf("%w: subscript", ErrDoubleScript)
			}
			sc.Sub = arg
		}
	}
	if sc.Sup == nil && sc.Sub == nil {
		return base, nil
	}
	sc.Base = base
	return sc, nil
}

// parseArgument reads a group or a single atom
func (p *parser) parseArgument() (Node, error) {
	for {
		r, ok := p.peek()
		if !ok || r == '$' || r == '}' || r == '^' || r == '_' {
			return nil, ErrMissingArgument
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			return atom, nil
		}
	}
}

// parseAtom reads one symbol, command or group.
// It returns nil, nil for white space.
func (p *parser) parseAtom() (Node, error) {
	r := p.src[p.pos]
	switch {
	case unicode.IsSpace(r):
		p.pos++
		return nil, nil
	case r == '{':
		p.pos++
		l, err := p.parseList(false)
		if err != nil {
			return nil, err
		}
		p.pos++ // closing '}'
		return l, nil
	case r == '^' || r == '_':
		// script without base: attach to an empty list
		return List{}, nil
	case r == '\\':
		return p.parseCommand()
	}
	p.pos++
	return Symbol{R: r, Slant: mathSlant(r), Punct: isMathPunct(r)}, nil
}

func (p *parser) parseCommand() (Node, error) {
	p.pos++ // backslash
	r, ok := p.peek()
	if !ok {
		return nil, ErrMissingArgument
	}
	if !unicode.IsLetter(r) {
		p.pos++
		if sp, ok := spaces[string(r)]; ok {
			return sp, nil
		}
		// escaped character: \{ \} \_ \$ \%
		return Symbol{R: r}, nil
	}
	start := p.pos
	for p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])

	if sym, ok := symbols[name]; ok {
		return Symbol{R: sym, Slant: mathSlant(sym)}, nil
	}
	if sp, ok := spaces[name]; ok {
		return sp, nil
	}
	switch name {
	case "bar", "overline":
		body, err := p.parseArgument()
		if err != nil {
			return nil, fmt.Errorf("\\%s: %w", name, err)
		}
		return Bar{Body: body}, nil
	case "mathrm", "rm", "text":
		body, err := p.parseArgument()
		if err != nil {
			return nil, fmt.Errorf("\\%s: %w", name, err)
		}
		return upright(body), nil
	}
	return p.unknown(name)
}

func (p *parser) unknown(name string) (Node, error) {
	err := fmt.Errorf("%w: \\%s", ErrUnknownCommand, name)
	switch p.mode {
	case StrictErrorMode:
		return nil, err
	case WarnErrorMode:
		slog.Warn("rendering unsupported TeX command literally", "command", name)
	}
	return PlainText("\\" + name), nil
}

// upright removes the italic slant of every symbol in n
func upright(n Node) Node {
	switch n := n.(type) {
	case Symbol:
		n.Slant = figfont.Regular
		return n
	case List:
		out := make(List, len(n))
		for i, c := range n {
			out[i] = upright(c)
		}
		return out
	case Scripts:
		n.Base = upright(n.Base)
		if n.Sup != nil {
			n.Sup = upright(n.Sup)
		}
		if n.Sub != nil {
			n.Sub = upright(n.Sub)
		}
		return n
	case Bar:
		n.Body = upright(n.Body)
		return n
	}
	return n
}

// String returns the text content of the list, without markup;
// it is used as a textual description of rendered labels.
func (l List) String() string {
	var sb strings.Builder
	writeText(&sb, l)
	return sb.String()
}

func writeText(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case Symbol:
		sb.WriteRune(n.R)
	case Space:
		if n > 0 {
			sb.WriteByte(' ')
		}
	case List:
		for _, c := range n {
			writeText(sb, c)
		}
	case Scripts:
		writeText(sb, n.Base)
		if n.Sup != nil {
			sb.WriteByte('^')
			writeText(sb, n.Sup)
		}
		if n.Sub != nil {
			sb.WriteByte('_')
			writeText(sb, n.Sub)
		}
	case Bar:
		writeText(sb, n.Body)
		sb.WriteRune('\u0304') // combining macron
	}
}
