// Package rules is the stateless rule library (SPEC_FULL §4.4): one
// function per structural or indicator-confirmation check, each taking a
// candidate plus the series/indicators/config it was found in and
// returning a pass/fail Result. No rule mutates anything it is given and
// no rule depends on any other rule having run first.
package rules

// Result is the outcome of one rule evaluation. Reason is populated on
// failure only, for debug logging; it is never shown to a passing rule.
type Result struct {
	Pass   bool
	Reason string
}

func pass() Result { return Result{Pass: true} }

func fail(reason string) Result { return Result{Pass: false, Reason: reason} }
