package cpp

import "errors"

// Failure kinds surfaced to a macro_expand caller (spec.md §7). Every
// error returned by this package is, or wraps, one of these sentinels
// or ErrInvalidToken (declared in lexer.go), so callers can branch with
// errors.Is instead of matching strings.
var (
	// ErrMalformedReplacement covers a leading/trailing ##, a #
	// without a following parameter name, and __VA_ARGS__ used in a
	// non-variadic macro. Detected once per Definition and cached by
	// its checked flag.
	ErrMalformedReplacement = errors.New("malformed replacement list")

	// ErrMissingCloseParen is returned when a function-like invocation
	// runs off the end of the buffer before its matching ')'.
	ErrMissingCloseParen = errors.New("missing closing parenthesis")

	// ErrTooFewArguments and ErrTooManyArguments report an arity
	// mismatch against a function-like macro's parameter list.
	ErrTooFewArguments  = errors.New("too few arguments to function-like macro")
	ErrTooManyArguments = errors.New("too many arguments to function-like macro")

	// ErrPasteFailed is returned when ## produces text that does not
	// re-lex to exactly one preprocessing token.
	ErrPasteFailed = errors.New("## did not paste to a single token")

	// ErrInvalidOutputToken guards the serialization invariant that
	// only Identifier and Other tokens may reach output.
	ErrInvalidOutputToken = errors.New("non-text token reached serialization")
)
