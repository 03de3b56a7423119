// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package bcparse

import (
	"fmt"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

// Grammar, one statement per line (blank lines and comments ignored):
//
//	name := TYPE(child1, child2, ...)
//	name := [L,U] THRESHOLD(child1, ...)
//	name := [L] ATLEAST(child1, ...)
//	ASSIGN name
//	ASSIGN ~name
//
// A child is either a previously-bound name or an inline ~name for NOT.
// Forward references are allowed: an identifier that hasn't been bound
// yet is installed as a placeholder VAR and then re-typed in place once
// its own defining line is parsed.

var typeKeywords = map[string]circuit.Type{
	"FALSE":     circuit.False,
	"TRUE":      circuit.True,
	"VAR":       circuit.Var,
	"REF":       circuit.Ref,
	"NOT":       circuit.Not,
	"OR":        circuit.Or,
	"AND":       circuit.And,
	"EQUIV":     circuit.Equiv,
	"ODD":       circuit.Odd,
	"EVEN":      circuit.Even,
	"ITE":       circuit.Ite,
	"THRESHOLD": circuit.Threshold,
	"ATLEAST":   circuit.Atleast,
}

// Parser consumes tokens from a Lexer and installs gates into c.
type Parser struct {
	lex  *Lexer
	tok  Token
	c    *circuit.Circuit
	defd map[string]bool
}

// Parse reads src in full and installs every gate it defines into c,
// returning an error on the first malformed statement. c may already
// contain gates (e.g. from a previous Parse call against another file
// sharing the same circuit).
func Parse(c *circuit.Circuit, src []byte) error {
	p := &Parser{lex: NewLexer(src), c: c, defd: make(map[string]bool)}

	if err := p.advance(); err != nil {
		return err
	}

	for p.tok.Type != TokEOF {
		if err := p.statement(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) advance() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = t

	return nil
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.tok.Type != tt {
		return Token{}, fmt.Errorf("bcparse: line %d: expected %s, got %v", p.tok.Line, what, p.tok)
	}

	t := p.tok

	if err := p.advance(); err != nil {
		return Token{}, err
	}

	return t, nil
}

func (p *Parser) statement() error {
	if p.tok.Type == TokKwAssign {
		return p.assignStatement()
	}

	return p.defStatement()
}

func (p *Parser) assignStatement() error {
	if err := p.advance(); err != nil {
		return err
	}

	negate := false
	if p.tok.Type == TokTilde {
		negate = true
		if err := p.advance(); err != nil {
			return err
		}
	}

	nameTok, err := p.expect(TokIdent, "identifier")
	if err != nil {
		return err
	}

	idx := p.resolve(nameTok.Text)
	g := p.c.Gate(idx)
	g.AddHandle(circuit.Handle{Kind: circuit.RootHandleKind})

	if !p.c.Determine(idx, !negate) {
		return fmt.Errorf("bcparse: line %d: ASSIGN of %s conflicts with an earlier determination: %w", nameTok.Line, nameTok.Text, circuit.ErrUnsat)
	}

	return nil
}

func (p *Parser) defStatement() error {
	nameTok, err := p.expect(TokIdent, "identifier")
	if err != nil {
		return err
	}

	if _, err := p.expect(TokAssignOp, "':='"); err != nil {
		return err
	}

	var tmin, tmax uint

	hasBounds := false

	if p.tok.Type == TokLBracket {
		if err := p.advance(); err != nil {
			return err
		}

		lo, err := p.expect(TokInt, "integer")
		if err != nil {
			return err
		}

		tmin = uint(lo.IntV)
		tmax = tmin

		if p.tok.Type == TokComma {
			if err := p.advance(); err != nil {
				return err
			}

			hi, err := p.expect(TokInt, "integer")
			if err != nil {
				return err
			}

			tmax = uint(hi.IntV)
		}

		if _, err := p.expect(TokRBracket, "']'"); err != nil {
			return err
		}

		hasBounds = true
	}

	typeTok, err := p.expect(TokIdent, "gate type")
	if err != nil {
		return err
	}

	gateType, ok := typeKeywords[typeTok.Text]
	if !ok {
		return fmt.Errorf("bcparse: line %d: unknown gate type %q", typeTok.Line, typeTok.Text)
	}

	children, err := p.childList()
	if err != nil {
		return err
	}

	idx := p.define(nameTok.Text, gateType, children)
	g := p.c.Gate(idx)

	if hasBounds {
		g.Tmin, g.Tmax = tmin, tmax
	}

	return nil
}

func (p *Parser) childList() ([]int, error) {
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}

	var children []int

	for p.tok.Type != TokRParen {
		negate := false
		if p.tok.Type == TokTilde {
			negate = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		childTok, err := p.expect(TokIdent, "identifier")
		if err != nil {
			return nil, err
		}

		idx := p.resolve(childTok.Text)

		if negate {
			idx = p.c.Install(circuit.Not, []int{idx}).Index
		}

		children = append(children, idx)

		if p.tok.Type == TokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}

	return children, nil
}

// resolve returns the gate index bound to name, installing a placeholder
// VAR gate for a not-yet-defined forward reference.
func (p *Parser) resolve(name string) int {
	if idx, ok := p.c.Lookup(name); ok {
		return idx
	}

	g := p.c.Install(circuit.Var, nil)
	_ = p.c.Bind(name, g.Index)

	return g.Index
}

// define binds name to a gate of the given type and children, reusing
// the placeholder installed by an earlier forward reference if one
// exists instead of installing a second gate for the same name.
func (p *Parser) define(name string, t circuit.Type, children []int) int {
	if idx, ok := p.c.Lookup(name); ok {
		if p.defd[name] {
			// Redefinition of an already-defined name: install a fresh
			// gate and redirect, so any earlier references keep working
			// via Circuit.Redirect's parent rewiring.
			g := p.c.Install(t, children)
			p.c.Redirect(idx, g.Index)
			_ = p.c.Bind(name, g.Index)
			p.defd[name] = true

			return g.Index
		}

		g := p.c.Gate(idx)
		g.Type = t
		g.Children = children

		for _, ch := range children {
			if cg := p.c.Gate(ch); cg != nil {
				cg.Parents[idx]++
			}
		}

		p.defd[name] = true

		return idx
	}

	g := p.c.Install(t, children)
	_ = p.c.Bind(name, g.Index)
	p.defd[name] = true

	return g.Index
}
