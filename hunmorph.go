// Package hunmorph provides morphological analysis of free-form text,
// aggregating the readings produced by Hunspell dictionaries for several
// languages into a single per-token result.
//
// All dictionaries are discovered and loaded once, inside New; an Analyzer
// either comes up with every declared dictionary usable or not at all.
package hunmorph

import (
	"os"
	"runtime"
)

// Config describes where dictionaries are looked for. All ambient process
// state (OS name, home directory) is carried here explicitly so discovery
// is deterministic and testable.
type Config struct {
	// Basenames are the dictionary base identifiers searched for, in
	// order. A basename "ru_RU" matches the pair ru_RU.dic / ru_RU.aff.
	Basenames []string

	// SearchPaths are candidate directories consulted on every platform,
	// in order.
	SearchPaths []string

	// DarwinSearchPaths are extra candidate directories consulted only
	// when OS is "darwin", in order.
	DarwinSearchPaths []string

	// OS selects the platform-specific search paths. Empty means
	// runtime.GOOS.
	OS string
}

// DefaultConfig returns the stock search configuration: Russian and
// Ukrainian dictionaries, the usual Hunspell install locations plus the
// working directory, and the macOS spelling directories.
func DefaultConfig() Config {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return Config{
		Basenames: []string{"ru_RU", "uk_UA"},
		SearchPaths: []string{
			"/usr/share/hunspell",
			"/usr/local/share/hunspell",
			cwd,
		},
		DarwinSearchPaths: []string{
			"/System/Library/Spelling",
			"/Library/Spelling",
			home + "/Spelling",
			"/opt/local/share/hunspell",
			"/sw/share/hunspell",
		},
		OS: runtime.GOOS,
	}
}

// Analyzer holds the discovered dictionaries and their loaded engines and
// provides the public API. It is immutable after New and safe for
// concurrent Analyze calls.
type Analyzer struct {
	// languages lists discovered language keys in discovery order.
	languages []string

	// dicts maps language key → discovered resource pairs, in
	// discovery order.
	dicts map[string][]ResourcePair

	// engines maps language key → one engine per resource pair, in the
	// same order as dicts.
	engines map[string][]Engine
}

// Option adjusts how New builds the Analyzer.
type Option func(*newOptions)

type newOptions struct {
	factory EngineFactory
}

// WithEngineFactory replaces the Hunspell-backed engine constructor.
// Primarily used to substitute deterministic engines in tests.
func WithEngineFactory(f EngineFactory) Option {
	return func(o *newOptions) { o.factory = f }
}

// New discovers dictionary/affix pairs under cfg's search paths, loads one
// stemming engine per pair and returns a ready-to-use Analyzer.
//
// Construction is all-or-nothing: a resource pair that exists but cannot
// be loaded makes New fail. A configured language with no dictionaries
// installed is not an error; it simply contributes no engines.
func New(cfg Config, opts ...Option) (*Analyzer, error) {
	if cfg.OS == "" {
		cfg.OS = runtime.GOOS
	}

	o := newOptions{factory: newHunspellEngine}
	for _, opt := range opts {
		opt(&o)
	}

	languages, dicts, err := locateDictionaries(cfg)
	if err != nil {
		return nil, err
	}
	engines, err := buildEngines(languages, dicts, o.factory)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		languages: languages,
		dicts:     dicts,
		engines:   engines,
	}, nil
}

// Languages returns the discovered language keys in discovery order.
func (a *Analyzer) Languages() []string {
	out := make([]string, len(a.languages))
	copy(out, a.languages)
	return out
}

// Dictionaries returns the discovered resource pairs per language key.
func (a *Analyzer) Dictionaries() map[string][]ResourcePair {
	out := make(map[string][]ResourcePair, len(a.dicts))
	for lang, pairs := range a.dicts {
		cp := make([]ResourcePair, len(pairs))
		copy(cp, pairs)
		out[lang] = cp
	}
	return out
}
