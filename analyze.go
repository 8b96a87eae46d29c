package hunmorph

import "fmt"

// Analyze splits text into words and collects, for every word, the
// distinct readings produced by every loaded engine.
//
// Empty input returns an empty Result without touching any engine.
// Otherwise the result is complete or the call fails: a transport fault in
// any single engine query aborts the whole call rather than returning a
// partial mapping. Tokens unknown to every dictionary are still present,
// mapped to an empty reading set.
//
// Analyze is safe for concurrent use; it only reads the immutable registry
// and each engine's query operation.
func (a *Analyzer) Analyze(text string) (*Result, error) {
	result := newResult()
	if text == "" {
		return result, nil
	}

	tokens := SplitWords(text)
	// Seed every token up front. This keeps the result complete even
	// when no dictionary was discovered at all, and fixes key order to
	// tokenization order.
	for _, tok := range tokens {
		result.ensure(tok)
	}

	for _, lang := range a.languages {
		for _, eng := range a.engines[lang] {
			for _, tok := range tokens {
				readings, err := eng.Stem(tok)
				if err != nil {
					return nil, fmt.Errorf("%w: %s %q: %w", ErrTransport, lang, tok, err)
				}
				for _, raw := range readings {
					result.add(tok, Reading{Language: lang, Stem: raw})
				}
			}
		}
	}
	return result, nil
}
