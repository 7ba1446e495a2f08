package models

import "time"

// Teacher represents an instructor eligible to sit on exam juries.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Busy holds externally committed windows (regular lessons, other
	// duties) loaded alongside the roster; the conflict detector treats
	// them the same as in-run commitments.
	Busy []TimeWindow `db:"-" json:"-"`
}

// TimeWindow is a dated half-open interval [Start, End) in "HH:MM" form.
type TimeWindow struct {
	Date  time.Time `db:"busy_date" json:"date"`
	Start string    `db:"start_time" json:"start"`
	End   string    `db:"end_time" json:"end"`
}

// Overlaps reports whether two windows on the same date intersect.
// Lexicographic comparison is sufficient for zero-padded "HH:MM" values.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if !sameDay(w.Date, other.Date) {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
