package query

import "errors"

var (
	// ErrUnbalancedParens indicates a parenthesis without a partner
	ErrUnbalancedParens = errors.New("query: unbalanced parentheses")

	// ErrNoMatch indicates text the grammar cannot decompose
	ErrNoMatch = errors.New("query: no structural match")

	// ErrAmbiguousOperator indicates different operators at one nesting level
	ErrAmbiguousOperator = errors.New("query: ambiguous operator sequence")

	// ErrEmptyTerm indicates a sub-term that is empty once its parens are stripped
	ErrEmptyTerm = errors.New("query: empty sub-term")
)

// AmbiguousDiagnostic is shown to the user when operators are mixed.
const AmbiguousDiagnostic = "Ambiguous operator sequence. Use parenthesis to explicitly define evaluation order."

// Outcome names the result of a build for logs and metrics.
func Outcome(r Result) string {
	switch {
	case r.Err == nil && r.Root == nil:
		return "empty"
	case r.Err == nil:
		return "ok"
	case errors.Is(r.Err, ErrUnbalancedParens):
		return "unbalanced"
	case errors.Is(r.Err, ErrAmbiguousOperator):
		return "ambiguous"
	case errors.Is(r.Err, ErrEmptyTerm):
		return "empty_term"
	case errors.Is(r.Err, ErrNoMatch):
		return "no_match"
	default:
		return "error"
	}
}
