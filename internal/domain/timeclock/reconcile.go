package timeclock

import "time"

// Reconcile decides whether an open shift must be auto-closed at now.
// The returned record, when ok is true, carries the forced time-out at
// the ceiling and the auto closure marker. Closing is irreversible:
// once marked auto-closed the record can never classify as overtime, no
// matter how it is re-run. Already-closed records are left untouched.
func Reconcile(rec TimeRecord, now time.Time, rules Rules) (TimeRecord, bool) {
	if !rec.Open() {
		return rec, false
	}
	if now.Sub(*rec.TimeIn) < rules.AutoCloseAfter {
		return rec, false
	}

	out := rec.TimeIn.Add(rules.AutoCloseAfter)
	rec.TimeOut = &out
	rec.ClosureKind = ClosureAuto
	rec.Notes = appendNote(rec.Notes, "auto-closed at shift ceiling")
	return rec, true
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}
