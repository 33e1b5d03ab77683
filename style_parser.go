package gestaltwerk

// styleParser is a hand-written recursive-descent parser for the style
// mini-language (spec.md §4.2), with a precedence-climbing expression
// parser. Per DESIGN.md's Open Question decision, `+` and `-` share one
// precedence tier below `*`/`/`, both left-associative, matching spec.md's
// explicit statement rather than the differing tier numbers the original
// Rust parser combinator used internally.
type styleParser struct {
	lex  *lexer
	cur  token
	peek token
	err  *ParseError
}

func newStyleParser(src string) (*styleParser, *ParseError) {
	lex := newLexer(src)
	p := &styleParser{lex: lex}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *styleParser) advance() *ParseError {
	p.cur = p.peek
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// ParseStyleDocument parses a complete style document (spec.md §4.2).
func ParseStyleDocument(src string) (*StyleDocumentAST, *ParseError) {
	p, err := newStyleParser(src)
	if err != nil {
		return nil, err
	}
	doc := &StyleDocumentAST{}
	for p.cur.kind != tokEOF {
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		doc.Rules = append(doc.Rules, rule)
	}
	return doc, nil
}

func (p *styleParser) expect(k tokenKind, what string) (token, *ParseError) {
	if p.cur.kind != k {
		return token{}, &ParseError{Pos: p.cur.pos, Message: "expected " + what}
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *styleParser) parseRule() (*StyleRule, *ParseError) {
	pos := p.cur.pos
	rule := &StyleRule{Pos: pos}
	for {
		m, err := p.parseMatcher()
		if err != nil {
			return nil, err
		}
		rule.Matchers = append(rule.Matchers, m)
		if p.cur.kind == tokGT {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	props, err := p.parseStyleBlock()
	if err != nil {
		return nil, err
	}
	rule.Properties = props
	return rule, nil
}

func (p *styleParser) parseMatcher() (Matcher, *ParseError) {
	pos := p.cur.pos
	var m Matcher
	switch p.cur.kind {
	case tokAtText:
		if p.cur.text != "text" {
			return Matcher{}, &ParseError{Pos: pos, Message: "unknown @-matcher " + p.cur.text}
		}
		m = Matcher{Kind: MatchText, Pos: pos}
		if err := p.advance(); err != nil {
			return Matcher{}, err
		}
	case tokIdent:
		m = Matcher{Kind: MatchElement, Name: p.cur.text, Pos: pos}
		if err := p.advance(); err != nil {
			return Matcher{}, err
		}
	default:
		return Matcher{}, &ParseError{Pos: pos, Message: "expected matcher"}
	}
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return Matcher{}, err
		}
		for p.cur.kind != tokRParen {
			attr, err := p.parseAttrPredicate()
			if err != nil {
				return Matcher{}, err
			}
			m.Attrs = append(m.Attrs, attr)
			if p.cur.kind == tokComma {
				if err := p.advance(); err != nil {
					return Matcher{}, err
				}
				continue
			}
			break
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return Matcher{}, err
		}
	}
	return m, nil
}

func (p *styleParser) parseAttrPredicate() (AttrPredicate, *ParseError) {
	pos := p.cur.pos
	key, err := p.expect(tokIdent, "attribute name")
	if err != nil {
		return AttrPredicate{}, err
	}
	if _, err := p.expect(tokEquals, "'='"); err != nil {
		return AttrPredicate{}, err
	}
	val, err := p.parseAttrValue()
	if err != nil {
		return AttrPredicate{}, err
	}
	return AttrPredicate{Key: key.text, Value: val, Pos: pos}, nil
}

// parseAttrValue parses a matcher attribute's right-hand side: a literal
// (which the matcher compares for equality) or a bare identifier (which
// the matcher treats as a variable binder) -- spec.md §4.3 step 2. This
// is not a full expression: attribute predicates never take arithmetic.
func (p *styleParser) parseAttrValue() (Expr, *ParseError) {
	pos := p.cur.pos
	switch p.cur.kind {
	case tokIdent:
		switch p.cur.text {
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &LiteralExpr{Value: Bool(true), Pos: pos}, nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &LiteralExpr{Value: Bool(false), Pos: pos}, nil
		default:
			name := p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &VarExpr{Name: name, Pos: pos}, nil
		}
	case tokInt:
		v := p.cur.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: Int(v), Pos: pos}, nil
	case tokFloat:
		v := p.cur.fval
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: Float(v), Pos: pos}, nil
	case tokString:
		v := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: String(v), Pos: pos}, nil
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseAttrValue()
		if err != nil {
			return nil, err
		}
		return &NegExpr{X: inner, Pos: pos}, nil
	default:
		return nil, &ParseError{Pos: pos, Message: "expected attribute value"}
	}
}

func (p *styleParser) parseStyleBlock() ([]StyleProperty, *ParseError) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var props []StyleProperty
	for p.cur.kind != tokRBrace {
		pos := p.cur.pos
		key, err := p.expect(tokIdent, "property name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEquals, "'='"); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		props = append(props, StyleProperty{Key: key.text, Value: expr, Pos: pos})
		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return props, nil
}

// precedence of the additive (+, -) and multiplicative (*, /) tiers.
const (
	precAdditive       = 1
	precMultiplicative = 2
)

func binOpPrec(k tokenKind) (BinOp, int, bool) {
	switch k {
	case tokPlus:
		return OpAdd, precAdditive, true
	case tokMinus:
		return OpSub, precAdditive, true
	case tokStar:
		return OpMul, precMultiplicative, true
	case tokSlash:
		return OpDiv, precMultiplicative, true
	default:
		return 0, 0, false
	}
}

// parseExpr is the precedence-climbing entry point: minPrec is the
// lowest-precedence operator this call is allowed to consume.
func (p *styleParser) parseExpr(minPrec int) (Expr, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := binOpPrec(p.cur.kind)
		if !ok || prec < minPrec {
			return left, nil
		}
		pos := p.cur.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinExpr{Op: op, L: left, R: right, Pos: pos}
	}
}

func (p *styleParser) parseUnary() (Expr, *ParseError) {
	if p.cur.kind == tokMinus {
		pos := p.cur.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NegExpr{X: x, Pos: pos}, nil
	}
	return p.parsePrimary()
}

func (p *styleParser) parsePrimary() (Expr, *ParseError) {
	pos := p.cur.pos
	switch p.cur.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokInt:
		v := p.cur.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: Int(v), Pos: pos}, nil
	case tokFloat:
		v := p.cur.fval
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: Float(v), Pos: pos}, nil
	case tokString:
		v := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: String(v), Pos: pos}, nil
	case tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch name {
		case "true":
			return &LiteralExpr{Value: Bool(true), Pos: pos}, nil
		case "false":
			return &LiteralExpr{Value: Bool(false), Pos: pos}, nil
		}
		if p.cur.kind == tokLParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []Expr
			for p.cur.kind != tokRParen {
				arg, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.kind == tokComma {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
			return &CallExpr{Name: name, Args: args, Pos: pos}, nil
		}
		return &VarExpr{Name: name, Pos: pos}, nil
	default:
		return nil, &ParseError{Pos: pos, Message: "expected expression"}
	}
}
