package cpp

import (
	"container/list"
	"fmt"
)

// blacklist is the stack of spec.md §3: the set of names currently
// forbidden to expand is the union of everything on it. Frames are
// pushed on expansion and released lazily via a token's Pop count
// rather than at scope exit (see Token.Pop and runDriver).
type blacklist struct {
	names []string
}

func (b *blacklist) push(name string) { b.names = append(b.names, name) }

func (b *blacklist) depth() int { return len(b.names) }

func (b *blacklist) truncate(n int) { b.names = b.names[:n] }

func (b *blacklist) release(n int) {
	if n > len(b.names) {
		n = len(b.names)
	}
	b.names = b.names[:len(b.names)-n]
}

func (b *blacklist) contains(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

// MacroExpand is the public entry point of spec.md §6:
// macro_expand(input, macros, line). line == 0 queries the table's
// final state.
func MacroExpand(input string, macros *Table, line uint32) (string, error) {
	toks, err := Tokenize(input, false, false)
	if err != nil {
		return "", err
	}
	buf := sliceToList(toks)
	bl := &blacklist{}
	if err := runDriver(buf, macros, line, bl); err != nil {
		return "", err
	}

	out := listToSlice(buf)
	for _, t := range out {
		if t.Kind != Identifier && t.Kind != Other {
			return "", fmt.Errorf("%w: kind %s", ErrInvalidOutputToken, t.Kind)
		}
	}
	return tokensText(out), nil
}

// runDriver implements spec.md §4.G: the rescan-and-replace loop. buf
// is walked left to right; macro invocations are spliced in place and
// the cursor repositioned to the start of the spliced region so it is
// itself rescanned. startDepth is recorded on entry and the blacklist
// is truncated back to it once the cursor reaches the end of buf, so a
// macro whose splice sits at the literal tail of buf (with no
// following token to carry its deferred pop) still releases its frame
// (spec.md §9, Design Notes, Blacklist with deferred pops (b)).
func runDriver(buf *list.List, macros *Table, line uint32, bl *blacklist) error {
	startDepth := bl.depth()
	cursor := buf.Front()

	for cursor != nil {
		tok := cursor.Value.(Token)
		if tok.Pop > 0 {
			bl.release(tok.Pop)
			tok.Pop = 0
			cursor.Value = tok
		}

		if tok.Kind != Identifier || tok.NoExpand {
			cursor = cursor.Next()
			continue
		}

		if bl.contains(tok.Text) {
			tok.NoExpand = true
			cursor.Value = tok
			cursor = cursor.Next()
			continue
		}

		def, ok := macros.FindDefine(line, tok.Text)
		if !ok {
			cursor = cursor.Next()
			continue
		}
		if err := def.Validate(); err != nil {
			return err
		}

		if !def.IsFunctionLike() {
			next, err := expandObjectLike(buf, cursor, def, bl)
			if err != nil {
				return err
			}
			cursor = next
			continue
		}

		openParen := cursor.Next()
		if openParen == nil || !isOpenParen(openParen.Value.(Token)) {
			cursor = cursor.Next()
			continue
		}
		next, err := expandFunctionLike(buf, cursor, openParen, def, macros, line, bl)
		if err != nil {
			return err
		}
		cursor = next
	}

	bl.truncate(startDepth)
	return nil
}

func isOpenParen(t Token) bool { return t.Kind == Other && t.Text == "(" }

// expandObjectLike implements spec.md §4.G step 5.
func expandObjectLike(buf *list.List, ident *list.Element, def *Definition, bl *blacklist) (*list.Element, error) {
	repl, err := Tokenize(def.Replacement, false, true)
	if err != nil {
		return nil, err
	}
	tok := ident.Value.(Token)

	if len(repl) == 0 {
		next := ident.Next()
		if next != nil {
			nt := next.Value.(Token)
			nt.WS = tok.WS
			next.Value = nt
		}
		buf.Remove(ident)
		return next, nil
	}

	origNext := ident.Next()
	repl[0].WS = tok.WS
	first := spliceBefore(buf, ident, repl)
	buf.Remove(ident)
	bl.push(def.Name)
	if origNext != nil {
		nt := origNext.Value.(Token)
		nt.Pop++
		origNext.Value = nt
	}
	return first, nil
}

// expandFunctionLike implements spec.md §4.G step 6. ident holds the
// macro name, openParen the '(' already confirmed to follow it.
func expandFunctionLike(buf *list.List, ident, openParen *list.Element, def *Definition, macros *Table, line uint32, bl *blacklist) (*list.Element, error) {
	args, closeParen, err := gatherArguments(openParen, def, bl)
	if err != nil {
		return nil, err
	}
	args, err = checkArity(def, args)
	if err != nil {
		return nil, err
	}
	substituted, err := substituteAndStringify(def, args, macros, line, bl)
	if err != nil {
		return nil, err
	}
	pasted, err := pasteTokens(substituted)
	if err != nil {
		return nil, err
	}

	tok := ident.Value.(Token)
	origNext := closeParen.Next()

	if len(pasted) == 0 {
		if origNext != nil {
			nt := origNext.Value.(Token)
			nt.WS = tok.WS
			origNext.Value = nt
		}
		removeSpan(buf, ident, closeParen)
		return origNext, nil
	}

	pasted[0].WS = tok.WS
	first := spliceBefore(buf, ident, pasted)
	removeSpan(buf, ident, closeParen)
	if origNext != nil {
		nt := origNext.Value.(Token)
		nt.Pop++
		origNext.Value = nt
	}
	// Push the macro name only now that the invocation fully resolved;
	// an invocation that failed to expand (missing paren, bad arity)
	// never paints its own name blue.
	bl.push(def.Name)
	return first, nil
}

// spliceBefore inserts toks immediately before mark and returns the
// element holding the first inserted token.
func spliceBefore(buf *list.List, mark *list.Element, toks []Token) *list.Element {
	var first *list.Element
	for i, t := range toks {
		e := buf.InsertBefore(t, mark)
		if i == 0 {
			first = e
		}
	}
	return first
}

// removeSpan erases every element from from through to, inclusive.
func removeSpan(buf *list.List, from, to *list.Element) {
	e := from
	for e != nil {
		next := e.Next()
		buf.Remove(e)
		if e == to {
			return
		}
		e = next
	}
}
