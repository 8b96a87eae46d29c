package hunmorph

import "fmt"

// Engine is the stemming capability consulted for each token. One Engine
// is bound to exactly one resource pair.
//
// Stem returns zero or more raw reading strings for a non-empty token; no
// readings is the normal outcome for an unknown word, not an error. A
// non-nil error means the boundary to the engine faulted (relevant when
// the engine is accessed remotely) and aborts the whole analysis.
// Implementations must not observably mutate state between calls and must
// be safe for concurrent Stem calls.
type Engine interface {
	Stem(token string) ([]string, error)
}

// EngineFactory builds the Engine for one discovered resource pair.
// Loading may be expensive and may fail if either file is malformed.
type EngineFactory func(pair ResourcePair) (Engine, error)

// buildEngines instantiates one engine per resource pair, preserving
// language and pair discovery order. Any single failure aborts the build.
func buildEngines(languages []string, dicts map[string][]ResourcePair, factory EngineFactory) (map[string][]Engine, error) {
	engines := make(map[string][]Engine, len(dicts))
	for _, lang := range languages {
		for _, pair := range dicts[lang] {
			eng, err := factory(pair)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrConfig, pair.Dic, err)
			}
			engines[lang] = append(engines[lang], eng)
		}
	}
	return engines, nil
}
