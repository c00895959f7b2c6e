package session

import (
	"time"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
)

// PickLatest selects the most recent attempt from a list. The first attempt
// becomes the incumbent unconditionally, even with an unparseable timestamp;
// after that a challenger only wins if its timestamp parses and is strictly
// newer. An unparseable challenger never displaces a parseable incumbent,
// and a parseable challenger always displaces an unparseable one. With no
// usable timestamps anywhere the result is therefore the first attempt in
// source order. Empty input yields nil.
func PickLatest(attempts []Attempt) *Attempt {
	var best *Attempt
	var bestAt time.Time
	bestParsed := false

	for i := range attempts {
		cand := &attempts[i]
		if best == nil {
			best = cand
			bestAt, bestParsed = normalize.ParseTime(cand.LastAttemptAt)
			continue
		}
		at, ok := normalize.ParseTime(cand.LastAttemptAt)
		if !ok {
			continue
		}
		if !bestParsed || at.After(bestAt) {
			best, bestAt, bestParsed = cand, at, true
		}
	}
	return best
}

// DeriveSortKey reduces a history to the single timestamp used to order
// accounts by most recent relevant activity: the latest success's timestamp
// when one exists, else the latest failure's, else "". A success wins over a
// chronologically newer failure; product has been asked to confirm that
// precedence, so do not reorder it here.
func DeriveSortKey(h History) string {
	if s := PickLatest(h.Successes); s != nil && s.LastAttemptAt != "" {
		return s.LastAttemptAt
	}
	if f := PickLatest(h.Failures); f != nil && f.LastAttemptAt != "" {
		return f.LastAttemptAt
	}
	return ""
}
