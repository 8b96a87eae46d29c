package hunmorph

// Reading is a single morphological analysis of one token: the language
// key of the dictionary group that produced it and the raw stem/tag string
// the engine returned. Two readings are the same reading iff both fields
// match, so identical output from two dictionaries of one language
// collapses to a single entry.
type Reading struct {
	Language string
	Stem     string
}

// Result is the outcome of one Analyze call: a mapping from token to the
// distinct readings found for it across every engine. Tokens keep
// first-seen order; each token's readings keep first-seen order. Every
// token split out of the input is present, with an empty reading set when
// no dictionary knows the word.
type Result struct {
	tokens   []string
	readings map[string][]Reading
	seen     map[string]map[Reading]struct{}
}

func newResult() *Result {
	return &Result{
		readings: make(map[string][]Reading),
		seen:     make(map[string]map[Reading]struct{}),
	}
}

// ensure inserts token with an empty reading set if it is not yet present.
// An existing entry, empty or not, is left untouched.
func (r *Result) ensure(token string) {
	if _, ok := r.seen[token]; ok {
		return
	}
	r.tokens = append(r.tokens, token)
	r.seen[token] = make(map[Reading]struct{})
}

// add upserts a reading into token's set, creating the entry if needed.
// Duplicate readings are dropped.
func (r *Result) add(token string, reading Reading) {
	r.ensure(token)
	if _, dup := r.seen[token][reading]; dup {
		return
	}
	r.seen[token][reading] = struct{}{}
	r.readings[token] = append(r.readings[token], reading)
}

// Len returns the number of tokens in the result.
func (r *Result) Len() int {
	return len(r.tokens)
}

// Tokens returns all tokens in first-seen order.
func (r *Result) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Readings returns the readings recorded for token in first-seen order.
// The second return value reports whether the token is present at all; a
// present token with no readings yields an empty slice and true.
func (r *Result) Readings(token string) ([]Reading, bool) {
	if _, ok := r.seen[token]; !ok {
		return nil, false
	}
	rs := r.readings[token]
	out := make([]Reading, len(rs))
	copy(out, rs)
	return out, true
}

// Equal reports whether two results hold the same tokens in the same
// order with the same reading sequences.
func (r *Result) Equal(other *Result) bool {
	if other == nil || len(r.tokens) != len(other.tokens) {
		return false
	}
	for i, tok := range r.tokens {
		if other.tokens[i] != tok {
			return false
		}
		a, b := r.readings[tok], other.readings[tok]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}
