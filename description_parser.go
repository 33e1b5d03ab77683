package gestaltwerk

// descParser parses the description (tree) mini-language (spec.md §4.1)
// directly into live Node values. The grammar's AST is never actually
// materialized as a separate data structure -- nodes are built as the
// parser descends, matching spec.md's "the AST is not retained
// afterwards".
type descParser struct {
	lex  *lexer
	cur  token
	peek token
}

func newDescParser(src string) (*descParser, *ParseError) {
	p := &descParser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *descParser) advance() *ParseError {
	p.cur = p.peek
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *descParser) expect(k tokenKind, what string) (token, *ParseError) {
	if p.cur.kind != k {
		return token{}, &ParseError{Pos: p.cur.pos, Message: "expected " + what}
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

// ParseDescription parses a single top-level node (element or text)
// written in the description mini-language.
func ParseDescription(src string) (Node, *ParseError) {
	p, err := newDescParser(src)
	if err != nil {
		return Node{}, err
	}
	node, err := p.parseNode()
	if err != nil {
		return Node{}, err
	}
	if p.cur.kind != tokEOF {
		return Node{}, &ParseError{Pos: p.cur.pos, Message: "unexpected trailing input"}
	}
	return node, nil
}

func (p *descParser) parseNode() (Node, *ParseError) {
	switch p.cur.kind {
	case tokString:
		text := p.cur.text
		if err := p.advance(); err != nil {
			return Node{}, err
		}
		node := NewText(text)
		if err := p.maybeParseAttrList(node); err != nil {
			return Node{}, err
		}
		return node, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return Node{}, err
		}
		node := NewElement(name)
		if err := p.maybeParseAttrList(node); err != nil {
			return Node{}, err
		}
		if p.cur.kind == tokLBrace {
			if err := p.advance(); err != nil {
				return Node{}, err
			}
			for p.cur.kind != tokRBrace {
				child, err := p.parseNode()
				if err != nil {
					return Node{}, err
				}
				node.AddChild(child)
			}
			if _, err := p.expect(tokRBrace, "'}'"); err != nil {
				return Node{}, err
			}
		}
		return node, nil
	default:
		return Node{}, &ParseError{Pos: p.cur.pos, Message: "expected element name or text literal"}
	}
}

func (p *descParser) maybeParseAttrList(node Node) *ParseError {
	if p.cur.kind != tokLParen {
		return nil
	}
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.kind != tokRParen {
		key, err := p.expect(tokIdent, "attribute name")
		if err != nil {
			return err
		}
		if _, err := p.expect(tokEquals, "'='"); err != nil {
			return err
		}
		val, err := p.parseLiteral()
		if err != nil {
			return err
		}
		node.RawSetProperty(key.text, val)
		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	_, err := p.expect(tokRParen, "')'")
	return err
}

// parseLiteral parses a description-language literal: a boolean, a
// signed integer, a `d.d` float, or a quoted string. No bare identifiers
// or expressions -- that's a style-language-only extension.
func (p *descParser) parseLiteral() (Value, *ParseError) {
	neg := false
	if p.cur.kind == tokMinus {
		neg = true
		if err := p.advance(); err != nil {
			return Value{}, err
		}
	}
	switch p.cur.kind {
	case tokInt:
		v := p.cur.ival
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if neg {
			v = -v
		}
		return Int(v), nil
	case tokFloat:
		v := p.cur.fval
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if neg {
			v = -v
		}
		return Float(v), nil
	case tokString:
		if neg {
			return Value{}, &ParseError{Pos: p.cur.pos, Message: "cannot negate a string literal"}
		}
		v := p.cur.text
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return String(v), nil
	case tokIdent:
		if neg {
			return Value{}, &ParseError{Pos: p.cur.pos, Message: "cannot negate a boolean literal"}
		}
		switch p.cur.text {
		case "true":
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			return Bool(true), nil
		case "false":
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			return Bool(false), nil
		}
		return Value{}, &ParseError{Pos: p.cur.pos, Message: "expected literal, got identifier " + p.cur.text}
	default:
		return Value{}, &ParseError{Pos: p.cur.pos, Message: "expected literal value"}
	}
}
