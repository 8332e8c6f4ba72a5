package cpp

import (
	"fmt"
	"strings"
)

// Definition is a parsed macro definition (spec.md §3). An absent
// parameter list (object-like macro) is represented by a nil/empty
// Params; an empty parameter list (function-like FOO()) is a
// one-element Params containing the empty string. A variadic
// function-like macro has its last parameter equal to the literal
// "...", with __VA_ARGS__ in Replacement binding to it.
type Definition struct {
	Name        string
	Params      []string
	Replacement string

	// checked memoizes that Replacement has passed the validation of
	// spec.md §7 (malformed replacement list): no leading/trailing ##,
	// # not followed by a parameter, __VA_ARGS__ in a non-variadic
	// macro. It is set only once validation succeeds.
	checked bool
}

// IsFunctionLike reports whether d has a parameter list at all
// (possibly the one-element empty-string list of FOO()).
func (d *Definition) IsFunctionLike() bool {
	return len(d.Params) > 0
}

// IsVariadic reports whether d's last parameter is the literal "...".
func (d *Definition) IsVariadic() bool {
	return len(d.Params) > 0 && d.Params[len(d.Params)-1] == "..."
}

// namedParamCount is the number of parameters a caller must supply
// arguments for, excluding the trailing "..." of a variadic macro.
func (d *Definition) namedParamCount() int {
	if d.IsVariadic() {
		return len(d.Params) - 1
	}
	return len(d.Params)
}

// paramIndex returns the index of name within d's parameters, treating
// __VA_ARGS__ as an alias for the final "..." parameter of a variadic
// macro, and -1 if name is not a parameter.
func (d *Definition) paramIndex(name string) int {
	if d.IsVariadic() && name == "__VA_ARGS__" {
		return len(d.Params) - 1
	}
	for i, p := range d.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// Validate checks the malformed-replacement-list rules of spec.md §7:
// a leading or trailing ##, a # not followed by a parameter name, and
// __VA_ARGS__ used outside a variadic macro. The result is memoized in
// checked so a Definition is only ever validated once.
func (d *Definition) Validate() error {
	if d.checked {
		return nil
	}
	toks, err := Tokenize(d.Replacement, d.IsFunctionLike(), true)
	if err != nil {
		return err
	}
	if len(toks) > 0 {
		if toks[0].Kind == Paste {
			return fmt.Errorf("%w: %q starts with ##", ErrMalformedReplacement, d.Name)
		}
		if toks[len(toks)-1].Kind == Paste {
			return fmt.Errorf("%w: %q ends with ##", ErrMalformedReplacement, d.Name)
		}
	}
	for i, t := range toks {
		switch {
		case t.Kind == Stringify:
			if i+1 >= len(toks) || toks[i+1].Kind != Identifier || d.paramIndex(toks[i+1].Text) < 0 {
				return fmt.Errorf("%w: %q has # not followed by a parameter", ErrMalformedReplacement, d.Name)
			}
		case t.Kind == Identifier && t.Text == "__VA_ARGS__" && !d.IsVariadic():
			return fmt.Errorf("%w: %q uses __VA_ARGS__ without being variadic", ErrMalformedReplacement, d.Name)
		}
	}
	d.checked = true
	return nil
}

// ParseDefinition parses a definition of the form
// "<name>[(<params>)] <replacement>", i.e. the directive text with the
// leading "#define " already stripped, following spec.md §4.C (itself
// following original_source/libmacro.cc's parse_macro_def): split at
// the first space into name[+params] and replacement text; a
// parameter list is present iff the character before that first space
// is ')'.
func ParseDefinition(def string) *Definition {
	d := &Definition{}

	p := strings.IndexByte(def, ' ')
	if p < 0 {
		// No space: a bare macro name, no params, empty replacement.
		d.Name = def
		return d
	}

	d.Replacement = def[p+1:]

	if p > 0 && def[p-1] == ')' {
		lparen := strings.IndexByte(def[:p], '(')
		start := lparen
		for {
			start++
			length := 0
			for def[start+length] != ',' && def[start+length] != ')' {
				length++
			}
			d.Params = append(d.Params, def[start:start+length])
			start += length
			if def[start] == ')' {
				break
			}
		}
		d.Name = def[:lparen]
	} else {
		d.Name = def[:p]
	}

	return d
}
