package gestaltwerk

// StyleFunc is a function style expressions can call via `name(args...)`,
// registered with Manager.AddFuncRaw / Styles.addFunc.
type StyleFunc func(args []Value) (Value, error)

// evalEnv bundles what a rule's expressions are evaluated against:
// spec.md §4.4's "(the rule's bound variables, the Styles object for
// function lookup, the parent rectangle)".
type evalEnv struct {
	vars       map[string]Value
	funcs      map[string]StyleFunc
	parentRect Rect
}

func evalExpr(env *evalEnv, expr Expr) (Value, *EvalError) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *VarExpr:
		switch e.Name {
		case "parent_x":
			return Int(env.parentRect.X), nil
		case "parent_y":
			return Int(env.parentRect.Y), nil
		case "parent_width":
			return Int(env.parentRect.Width), nil
		case "parent_height":
			return Int(env.parentRect.Height), nil
		}
		if v, ok := env.vars[e.Name]; ok {
			return v, nil
		}
		return Value{}, &EvalError{Kind: UnknownVariable, Name: e.Name, Pos: e.Pos}
	case *NegExpr:
		v, err := evalExpr(env, e.X)
		if err != nil {
			return Value{}, err
		}
		switch v.Kind() {
		case KindBool:
			b, _ := v.AsBool()
			return Bool(!b), nil
		case KindInt:
			i, _ := v.AsInt()
			return Int(-i), nil
		case KindFloat:
			f, _ := v.AsFloat()
			return Float(-f), nil
		default:
			return Value{}, &EvalError{Kind: CantOp, Op: "negate", Pos: e.Pos}
		}
	case *BinExpr:
		return evalBinExpr(env, e)
	case *CallExpr:
		return evalCallExpr(env, e)
	default:
		return Value{}, &EvalError{Kind: CantOp, Op: "evaluate", Pos: expr.exprPos()}
	}
}

// evalBinExpr applies the widening rule shared by add/sub/mul: int op
// int stays int (wrapping on overflow, per DESIGN.md's Open Question
// decision), any float operand widens the whole operation to float64.
func evalBinExpr(env *evalEnv, e *BinExpr) (Value, *EvalError) {
	l, err := evalExpr(env, e.L)
	if err != nil {
		return Value{}, err
	}
	r, err := evalExpr(env, e.R)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case OpAdd:
		if l.IsString() && r.IsString() {
			ls, _ := l.AsString()
			rs, _ := r.AsString()
			return String(ls + rs), nil
		}
		if li, lok := l.AsInt(); lok {
			if ri, rok := r.AsInt(); rok {
				return Int(li + ri), nil
			}
		}
		if lf, lok := l.Float64(); lok {
			if rf, rok := r.Float64(); rok {
				return Float(lf + rf), nil
			}
		}
		return Value{}, &EvalError{Kind: CantOp, Op: "add", Pos: e.Pos}
	case OpSub:
		if li, lok := l.AsInt(); lok {
			if ri, rok := r.AsInt(); rok {
				return Int(li - ri), nil
			}
		}
		if lf, lok := l.Float64(); lok {
			if rf, rok := r.Float64(); rok {
				return Float(lf - rf), nil
			}
		}
		return Value{}, &EvalError{Kind: CantOp, Op: "subtract", Pos: e.Pos}
	case OpMul:
		if li, lok := l.AsInt(); lok {
			if ri, rok := r.AsInt(); rok {
				return Int(li * ri), nil
			}
		}
		if lf, lok := l.Float64(); lok {
			if rf, rok := r.Float64(); rok {
				return Float(lf * rf), nil
			}
		}
		return Value{}, &EvalError{Kind: CantOp, Op: "multiply", Pos: e.Pos}
	case OpDiv:
		// Division always promotes through float64, even int/int --
		// spec.md §4.4: "i32/i32 promotes to f64". No zero check: the
		// f64 path yields +-Inf or NaN per IEEE-754, matching the
		// original's behavior exactly.
		lf, lok := l.Float64()
		rf, rok := r.Float64()
		if lok && rok {
			return Float(lf / rf), nil
		}
		return Value{}, &EvalError{Kind: CantOp, Op: "divide", Pos: e.Pos}
	default:
		return Value{}, &EvalError{Kind: CantOp, Op: "apply operator", Pos: e.Pos}
	}
}

func evalCallExpr(env *evalEnv, e *CallExpr) (Value, *EvalError) {
	fn, ok := env.funcs[e.Name]
	if !ok {
		return Value{}, &EvalError{Kind: UnknownFunction, Name: e.Name, Pos: e.Pos}
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := evalExpr(env, a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	v, err := fn(args)
	if err != nil {
		return Value{}, &EvalError{Kind: FunctionFailed, Pos: e.Pos, Cause: err}
	}
	return v, nil
}
