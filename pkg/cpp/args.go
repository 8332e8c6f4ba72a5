package cpp

import (
	"container/list"
	"fmt"
)

// gatherArguments implements spec.md §4.D: openParen is the buffer
// element holding the '(' of a function-like invocation. It walks
// forward collecting argument token lists at paren/comma boundaries
// and returns the element holding the matching ')'.
//
// Every element visited (openParen included, since it is itself
// consumed as part of the invocation span) has any pop count it
// carries released against bl first; this is what lets a macro name
// painted blue by an enclosing expansion become expandable again once
// its deferred-pop token is swallowed by a nested invocation's
// argument list, per the rescan example of spec.md §8 scenario 6.
func gatherArguments(openParen *list.Element, def *Definition, bl *blacklist) (args [][]Token, closeParen *list.Element, err error) {
	if op := openParen.Value.(Token); op.Pop > 0 {
		bl.release(op.Pop)
	}

	level := 1
	var cur []Token
	e := openParen
	for {
		e = e.Next()
		if e == nil {
			return nil, nil, ErrMissingCloseParen
		}
		t := e.Value.(Token)
		if t.Pop > 0 {
			bl.release(t.Pop)
		}

		switch {
		case t.Kind == Other && t.Text == "(":
			level++
			cur = append(cur, t.clone())
		case t.Kind == Other && t.Text == ")":
			level--
			if level == 0 {
				args = append(args, cur)
				return args, e, nil
			}
			cur = append(cur, t.clone())
		case t.Kind == Other && t.Text == "," && level == 1 && !variadicTailComma(def, args):
			args = append(args, cur)
			cur = nil
		default:
			cur = append(cur, t.clone())
		}
	}
}

// variadicTailComma reports whether a comma encountered now belongs to
// the variadic tail argument rather than separating arguments: true
// once the argument currently being built is the last parameter slot
// of a variadic macro (spec.md §4.D).
func variadicTailComma(def *Definition, argsSoFar [][]Token) bool {
	return def.IsVariadic() && len(argsSoFar)+1 == len(def.Params)
}

// checkArity validates args against def's parameter list per spec.md
// §4.D, returning args with an empty __VA_ARGS__ appended when the
// caller omitted it entirely.
func checkArity(def *Definition, args [][]Token) ([][]Token, error) {
	if def.IsVariadic() {
		slots := len(def.Params)
		switch {
		case len(args) < slots-1:
			return nil, fmt.Errorf("%w: %s requires at least %d arguments, got %d", ErrTooFewArguments, def.Name, slots-1, len(args))
		case len(args) == slots-1:
			args = append(args, nil)
		}
		return args, nil
	}

	if len(def.Params) == 1 && def.Params[0] == "" {
		if len(args) != 1 || len(args[0]) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrTooManyArguments, def.Name)
		}
		return args, nil
	}

	if len(args) != len(def.Params) {
		kind := ErrTooManyArguments
		if len(args) < len(def.Params) {
			kind = ErrTooFewArguments
		}
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", kind, def.Name, len(def.Params), len(args))
	}
	return args, nil
}
