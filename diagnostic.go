package luacst

import "fmt"

// DiagnosticKind is the closed set of findings the parser can report,
// grouped into structural (missing closer/keyword), unexpected (wrong token
// in context), and local-content (invalid name, function, or number)
// categories.
type DiagnosticKind int

const (
	NotClosedBlock DiagnosticKind = iota
	NotClosedComment
	NotTerminatedString
	InvalidNumberFormat
	UnexpectedKeyword
	UnexpectedToken
	UnexpectedOperator
	ExpectingComma
	ExpectingCommaOrBracket
	ExpectingThen
	ExpectingDo
	ExpectingToken
	ExpectingName
	ExpectingClosingBracket
	ExpectingFunctionCall
	ExpectingExpression
	InvalidName
	InvalidFunction
)

var diagnosticKindNames = [...]string{
	NotClosedBlock:          "NotClosedBlock",
	NotClosedComment:        "NotClosedComment",
	NotTerminatedString:     "NotTerminatedString",
	InvalidNumberFormat:     "InvalidNumberFormat",
	UnexpectedKeyword:       "UnexpectedKeyword",
	UnexpectedToken:         "UnexpectedToken",
	UnexpectedOperator:      "UnexpectedOperator",
	ExpectingComma:          "ExpectingComma",
	ExpectingCommaOrBracket: "ExpectingCommaOrBracket",
	ExpectingThen:           "ExpectingThen",
	ExpectingDo:             "ExpectingDo",
	ExpectingToken:          "ExpectingToken",
	ExpectingName:           "ExpectingName",
	ExpectingClosingBracket: "ExpectingClosingBracket",
	ExpectingFunctionCall:   "ExpectingFunctionCall",
	ExpectingExpression:     "ExpectingExpression",
	InvalidName:             "InvalidName",
	InvalidFunction:         "InvalidFunction",
}

func (k DiagnosticKind) String() string {
	if int(k) >= 0 && int(k) < len(diagnosticKindNames) {
		return diagnosticKindNames[k]
	}
	return "DiagnosticKind(unknown)"
}

// Diagnostic is a source-range-tagged finding surfaced to the host.
// Severity is uniformly error-level; a host decides which diagnostics are
// editor-visible. Modeled on the teacher's Error
// struct (error.go), trimmed to the fields the spec's library surface
// actually needs — no Filename/Sender, since a single parse call is always
// scoped to one document and this is a library value, not a formatted
// host-facing error.
type Diagnostic struct {
	Start int
	End   int
	Kind  DiagnosticKind
}

// String renders a diagnostic for debugging/test output, in the same
// spirit as the teacher's Error.Error() and Token.String().
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s @ [%d, %d)", d.Kind, d.Start, d.End)
}
