package avatar

import "time"

// Roster is the in-memory, insertion-ordered list of records. It is owned by a
// single caller and is not safe for concurrent use.
type Roster struct {
	records     []Record
	placeholder string
	now         func() time.Time
}

// Option configures a Roster.
type Option func(*Roster)

// WithPlaceholder overrides the URL used for blank image fields.
func WithPlaceholder(u string) Option {
	return func(r *Roster) {
		if u != "" {
			r.placeholder = u
		}
	}
}

// WithClock overrides the id clock.
func WithClock(now func() time.Time) Option {
	return func(r *Roster) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRoster(opts ...Option) *Roster {
	r := &Roster{placeholder: PlaceholderURL, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset replaces the whole list.
func (r *Roster) Reset(records []Record) {
	r.records = append([]Record(nil), records...)
}

// Records returns a copy of the list.
func (r *Roster) Records() []Record {
	return append([]Record(nil), r.records...)
}

func (r *Roster) Len() int { return len(r.records) }

// At returns the record at index i.
func (r *Roster) At(i int) (Record, bool) {
	if i < 0 || i >= len(r.records) {
		return Record{}, false
	}
	return r.records[i], true
}

// ByID returns the record with the given id.
func (r *Roster) ByID(id int64) (Record, bool) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Placeholder is the URL used for blank image fields.
func (r *Roster) Placeholder() string { return r.placeholder }

// Add validates f and appends a new record with a timestamp id.
func (r *Roster) Add(f Form) (Record, error) {
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	first, last := SplitName(f.Name)
	rec := Record{
		ID:        r.nextID(),
		FirstName: first,
		LastName:  last,
		AvatarURL: ResolveURL(f.ImageURL, r.placeholder),
	}
	r.records = append(r.records, rec)
	return rec, nil
}

// Update validates f and replaces the record with the given id in place.
// It reports false, leaving the list untouched, when no record matches.
func (r *Roster) Update(id int64, f Form) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	first, last := SplitName(f.Name)
	for i := range r.records {
		if r.records[i].ID != id {
			continue
		}
		r.records[i] = Record{
			ID:        id,
			FirstName: first,
			LastName:  last,
			AvatarURL: ResolveURL(f.ImageURL, r.placeholder),
		}
		return true, nil
	}
	return false, nil
}

// nextID derives an id from the clock in milliseconds, bumped past any id
// already in the list.
func (r *Roster) nextID() int64 {
	id := r.now().UnixMilli()
	for {
		if _, taken := r.ByID(id); !taken {
			return id
		}
		id++
	}
}
