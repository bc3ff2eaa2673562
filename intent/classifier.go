package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Intent is the label returned for a piece of free text.
type Intent string

const (
	StudentReport Intent = "student_report"
	TeacherReport Intent = "teacher_report"
	PaymentReport Intent = "payment_report"
	Unknown       Intent = "unknown"
)

// Rule matches when every keyword in All and at least one in Any (if set)
// occur in the normalised text.
type Rule struct {
	Intent Intent
	All    []string
	Any    []string
}

func (r Rule) matches(text string) bool {
	for _, kw := range r.All {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, kw := range r.Any {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DefaultRules are evaluated in order; the first match wins.
var DefaultRules = []Rule{
	{Intent: StudentReport, All: []string{"student", "performance"}},
	{Intent: TeacherReport, All: []string{"teacher"}},
	{Intent: PaymentReport, Any: []string{"revenue", "payment"}},
}

type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, or DefaultRules when none are given.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify maps text to the first matching rule's intent, or Unknown.
func (c *Classifier) Classify(text string) Intent {
	normalised := Normalise(text)
	for _, r := range c.rules {
		if r.matches(normalised) {
			return r.Intent
		}
	}
	return Unknown
}

// Normalise applies NFKC, lower-cases, and collapses every run of characters
// that are not letters or digits into a single space.
func Normalise(text string) string {
	lowered := cases.Lower(language.Und).String(norm.NFKC.String(text))
	return strings.Join(strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
