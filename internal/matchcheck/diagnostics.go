package matchcheck

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/errors"
)

// Fixed diagnostic strings. These are matched against in tests and
// should not be reworded casually — changing one changes what counts
// as "the same" diagnostic across a refactor.
const (
	msgUnreachablePattern    = "unreachable pattern"
	msgNonExhaustive         = "non-exhaustive patterns"
	msgUnmatchableNaN        = "unmatchable NaN in pattern, use the is_nan method in a guard instead"
	msgRefutableLocalBinding = "refutable pattern in local binding"
	msgRefutableForBinding   = "refutable pattern in 'for' loop binding"
	msgRefutableFuncArg      = "refutable pattern in function argument"
	msgMoveWithSubBindings   = "cannot bind by-move with sub-bindings"
	msgMoveIntoGuard         = "cannot bind by-move into a pattern guard"
	msgMoveAndRefSamePattern = "cannot bind by-move and by-ref in the same pattern"
	msgByRefOccursHere       = "by-ref binding occurs here"
	msgMismatchedTypes       = "mismatched types between arms"
)

// nonExhaustiveTypeNonEmpty renders spec.md's "type T is non-empty" label
// for the empty-match rule: a match with no arms over an inhabited
// scrutinee type.
func nonExhaustiveTypeNonEmpty(typeName string) string {
	return fmt.Sprintf("%s: type %s is non-empty", msgNonExhaustive, typeName)
}

// nonExhaustiveLabelNotCovered renders the labeled witness form, e.g.
// "non-exhaustive patterns: `None` not covered".
func nonExhaustiveLabelNotCovered(label string) string {
	return fmt.Sprintf("%s: `%s` not covered", msgNonExhaustive, label)
}

// reportSink accumulates *errors.Report values produced while checking one
// program, split by severity, and adapts them to the Diagnostics interface
// the rest of this package consults. It is the sink adapter described
// alongside the diagnostic strings: callers needing ailang's structured
// *errors.Report (the CLI, the pipeline) read Errors/Warnings/Notes/Bugs
// back out once checking finishes.
type reportSink struct {
	Errors   []*errors.Report
	Warnings []*errors.Report
	Notes    []*errors.Report
	Bugs     []*errors.Report
}

// NewReportSink returns a Diagnostics sink that buffers ailang's structured
// *errors.Report values.
func NewReportSink() *reportSink {
	return &reportSink{}
}

func (s *reportSink) Error(span ast.Pos, message string) {
	s.Errors = append(s.Errors, s.build(MCH001FromMessage(message), span, message))
}

func (s *reportSink) Warn(span ast.Pos, message string) {
	s.Warnings = append(s.Warnings, s.build(errors.MCH006, span, message))
}

func (s *reportSink) Note(span ast.Pos, message string) {
	s.Notes = append(s.Notes, s.build("", span, message))
}

func (s *reportSink) Bug(span ast.Pos, message string) {
	s.Bugs = append(s.Bugs, s.build(errors.MCH007, span, message))
}

// MCH001FromMessage picks the specific matchcheck error code for an error
// message, since Diagnostics.Error's single string argument covers several
// distinct conditions (exhaustiveness, refutability, binding legality,
// range comparability).
func MCH001FromMessage(message string) string {
	switch {
	case hasPrefix(message, msgNonExhaustive):
		return errors.MCH001
	case message == msgUnreachablePattern:
		return errors.MCH002
	case message == msgRefutableLocalBinding, message == msgRefutableForBinding, message == msgRefutableFuncArg:
		return errors.MCH003
	case message == msgMoveWithSubBindings, message == msgMoveIntoGuard, message == msgMoveAndRefSamePattern:
		return errors.MCH004
	case message == msgMismatchedTypes:
		return errors.MCH005
	default:
		return errors.MCH001
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func (s *reportSink) build(code string, span ast.Pos, message string) *errors.Report {
	sp := &ast.Span{Start: span, End: span}
	return &errors.Report{
		Schema:  "ailang.error/v1",
		Code:    code,
		Phase:   "matchcheck",
		Message: message,
		Span:    sp,
	}
}
