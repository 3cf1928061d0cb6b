package match

const (
	// DefaultLimit is the result count applied when a query names none.
	DefaultLimit = 10
	// MaxLimit caps the result count regardless of what the caller asks for.
	MaxLimit = 100
)

// Thresholds holds the fuzzy admission and confidence cutoffs. A record
// enters the fuzzy candidate pool only when its score strictly exceeds
// Fuzzy, and is flagged as a confident match only when it strictly exceeds
// Confident.
type Thresholds struct {
	Fuzzy     int
	Confident int
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Fuzzy: 40, Confident: 80}
}

// Query is a single reconciliation query after protocol decoding.
type Query struct {
	// Text is the free-text value to reconcile. Empty text yields an empty
	// result set rather than an error.
	Text string

	// Limit is the maximum number of candidates to return. Zero means
	// DefaultLimit; values above MaxLimit are clamped.
	Limit int

	// TypeID restricts matching to a single protocol type when non-empty.
	// An unrecognized id matches nothing.
	TypeID string

	// Properties is accepted per the protocol but does not narrow matching.
	// It is carried so a future property-aware scorer has the data.
	Properties map[string]any
}

// EffectiveLimit resolves the query limit against the default and cap.
func (q Query) EffectiveLimit() int {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}
