// Package session merges and ranks the login/session-attempt histories the
// backend attaches to accounts. The attempt payload has gone through several
// backend revisions and arrives as a bare mode string, an array of attempts,
// a structured object with success/failure lists, or a single attempt
// object; parsing dispatches on the runtime shape and degrades to an empty
// history rather than failing.
package session

import (
	"github.com/curatorhq/social-admin-gateway/internal/normalize"
)

// Attempt is one recorded outcome of an account authentication action.
// ErrorMessage is only populated on failure attempts.
type Attempt struct {
	SessionMode   string `json:"sessionMode,omitempty"`
	LastAttemptAt string `json:"lastAttemptAt,omitempty"`
	Reason        string `json:"reason,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

func (a Attempt) isEmpty() bool {
	return a.SessionMode == "" && a.LastAttemptAt == "" && a.Reason == "" && a.ErrorMessage == ""
}

// History holds an account's parsed session attempts, split by outcome.
// Either list may be empty; an attempt with no populated field is never
// stored.
type History struct {
	Successes []Attempt `json:"successes"`
	Failures  []Attempt `json:"failures"`
}

// Candidate keys per attempt field. LastAttemptAt keeps the raw string so
// the ranker can treat unparseable timestamps explicitly.
var (
	modeKeys    = []string{"sessionMode", "session_mode", "mode", "loginMode", "login_mode"}
	attemptKeys = []string{"lastAttemptAt", "last_attempt_at", "lastLoggedInAt", "last_logged_in_at", "attemptedAt", "attempted_at", "timestamp"}
	reasonKeys  = []string{"reason", "note", "detail"}

	errorRelKeys = []string{"failureInfo", "failure_info", "error", "lastError"}
	errorKeys    = []string{"errorMessage", "error_message", "message"}

	successListKeys = []string{"successResults", "success_results", "successes", "successList"}
	failureListKeys = []string{"failureResults", "failure_results", "failures", "failureList"}

	// Keys under which the account record carries the whole session payload.
	payloadKeys = []string{"sessionResults", "session_results", "loginHistory", "login_history", "sessionMode", "session_mode"}
)

// ParseHistory classifies an arbitrarily-shaped session payload and returns
// the ordered attempt lists. Shape precedence:
//
//  1. Non-empty string: a single success whose mode is the string.
//  2. Array: every element is a success-attempt candidate.
//  3. Object with success/failure arrays: each element parsed into the
//     corresponding list. A structured shape always wins over the
//     single-attempt fallback so a rich payload is never down-sampled.
//  4. Any other object: parsed as a single success, then as a single
//     failure.
//  5. Everything else: empty history.
func ParseHistory(raw any) History {
	h := History{Successes: []Attempt{}, Failures: []Attempt{}}

	switch v := raw.(type) {
	case string:
		if v != "" {
			h.Successes = append(h.Successes, Attempt{SessionMode: v})
		}
	case []any:
		for _, el := range v {
			if a, ok := successAttempt(el); ok {
				h.Successes = append(h.Successes, a)
			}
		}
	case map[string]any:
		successes, sok := attemptList(v, successListKeys)
		failures, fok := attemptList(v, failureListKeys)
		if sok || fok {
			for _, el := range successes {
				if a, ok := successAttempt(el); ok {
					h.Successes = append(h.Successes, a)
				}
			}
			for _, el := range failures {
				if a, ok := failureAttempt(el); ok {
					h.Failures = append(h.Failures, a)
				}
			}
			break
		}
		if a, ok := successAttempt(v); ok {
			h.Successes = append(h.Successes, a)
		} else if a, ok := failureAttempt(v); ok {
			h.Failures = append(h.Failures, a)
		}
	}
	return h
}

// FromRecord locates the session payload on a raw account record and parses
// it.
func FromRecord(rec map[string]any) History {
	return ParseHistory(normalize.Field(rec, payloadKeys...))
}

// attemptList finds the first candidate key holding an array. An empty array
// still counts as present: it marks the payload as the structured shape.
func attemptList(rec map[string]any, keys []string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := rec[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

func successAttempt(el any) (Attempt, bool) {
	rec, ok := el.(map[string]any)
	if !ok {
		return Attempt{}, false
	}
	a := Attempt{
		SessionMode:   normalize.AsString(normalize.Field(rec, modeKeys...)),
		LastAttemptAt: normalize.AsString(normalize.Field(rec, attemptKeys...)),
		Reason:        normalize.AsString(normalize.Field(rec, reasonKeys...)),
	}
	return a, !a.isEmpty()
}

func failureAttempt(el any) (Attempt, bool) {
	rec, ok := el.(map[string]any)
	if !ok {
		return Attempt{}, false
	}
	a, _ := successAttempt(el)
	a.ErrorMessage = normalize.AsString(normalize.NestedField(rec, errorRelKeys, errorKeys))
	return a, !a.isEmpty()
}
