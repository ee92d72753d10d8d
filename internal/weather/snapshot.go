package weather

// Placeholder is drawn, and remembered, in place of a missing temperature.
const Placeholder = "-"

// Snapshot is the latest known weather state. Every field is independently
// optional: nil means absent.
//
// A Snapshot is owned by the event loop: the sync channel writes it and the
// renderer reads it, never concurrently.
type Snapshot struct {
	High *string
	Low  *string
	Icon *Category
}

// Update is the decoded content of one weather payload. Nil fields were not
// present in the payload.
type Update struct {
	High      *string
	Low       *string
	WeatherId *int
}

// Apply merges a decoded payload into the snapshot. Absent keys leave the
// current values untouched, as do condition codes that classify as unknown.
func (s *Snapshot) Apply(update Update) {
	if update.High != nil {
		high := *update.High
		s.High = &high
	}
	if update.Low != nil {
		low := *update.Low
		s.Low = &low
	}
	if update.WeatherId != nil {
		if category := Classify(*update.WeatherId); category != UNKNOWN_CATEGORY {
			s.Icon = &category
		}
	}
}

// Clear drops every field at once.
func (s *Snapshot) Clear() {
	*s = Snapshot{}
}

// HasTemperatures reports whether both high and low are known.
func (s *Snapshot) HasTemperatures() bool {
	return s.High != nil && s.Low != nil
}

// MarkMissingTemperatures replaces both temperatures with the placeholder.
func (s *Snapshot) MarkMissingTemperatures() {
	high, low := Placeholder, Placeholder
	s.High = &high
	s.Low = &low
}

// IsEmpty reports whether no field is set.
func (s *Snapshot) IsEmpty() bool {
	return s.High == nil && s.Low == nil && s.Icon == nil
}
