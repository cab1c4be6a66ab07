package verify

import (
	"fmt"
	"strings"
)

// VerifError carries a verification failure plus the trail of contexts
// it bubbled up through, innermost first. Rendered outermost first so
// the reader can drill down from file to field:
//
//	> from a file plants/bractus.yml
//	> in a plant named "Bractus"
//	> in an evalput's OneOf node
//	as: weights sum to 0.900000, not 1
type VerifError struct {
	Trail []string
	Msg   string
}

func (e *VerifError) Error() string {
	var b strings.Builder
	for i := len(e.Trail) - 1; i >= 0; i-- {
		b.WriteString("> ")
		b.WriteString(e.Trail[i])
		b.WriteByte('\n')
	}
	b.WriteString("as: ")
	b.WriteString(e.Msg)
	return b.String()
}

// Errorf makes a trail-less verification error.
func Errorf(format string, args ...any) error {
	return &VerifError{Msg: fmt.Sprintf(format, args...)}
}

// Note wraps err with one more layer of context. Non-VerifErrors are
// promoted so the trail survives mixed error sources.
func Note(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	ctx := fmt.Sprintf(format, args...)
	if ve, ok := err.(*VerifError); ok {
		return &VerifError{Trail: append(ve.Trail, ctx), Msg: ve.Msg}
	}
	return &VerifError{Trail: []string{ctx}, Msg: err.Error()}
}

// UnknownName reports a reference to content that doesn't exist,
// suggesting near-misses from the corpus when any score well enough.
func UnknownName(kind, name string, suggestions []string) error {
	if len(suggestions) == 0 {
		return Errorf("no %s named %q", kind, name)
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return Errorf(
		"no %s named %q; perhaps you meant %s?",
		kind, name, strings.Join(quoted, ", or "),
	)
}
