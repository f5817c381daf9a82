package service

import (
	"sync"
)

// UndoLedger tracks the most recent vote cast by each voter, so that vote
// can be reversed within the undo window. It lives only in process memory:
// entries are lost on restart and are not shared between instances, which is
// an accepted single-instance limitation.
//
// One entry per voter; recording a new vote replaces any prior entry, so a
// second vote forfeits the ability to undo the first. The mutex only guards
// the map itself; semantically, concurrent votes from one voter resolve as
// last write wins.
type UndoLedger struct {
	mu       sync.Mutex
	lastVote map[string]string // voter ID -> recipient ID
}

// NewUndoLedger creates an empty undo ledger
func NewUndoLedger() *UndoLedger {
	return &UndoLedger{
		lastVote: make(map[string]string),
	}
}

// Record remembers the recipient of a voter's latest vote, replacing any
// earlier entry for that voter.
func (l *UndoLedger) Record(voterID, recipientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastVote[voterID] = recipientID
}

// Take removes and returns the voter's tracked recipient. The removal makes
// undo at-most-once: a second Take for the same vote reports nothing to undo.
func (l *UndoLedger) Take(voterID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recipientID, ok := l.lastVote[voterID]
	if ok {
		delete(l.lastVote, voterID)
	}
	return recipientID, ok
}
