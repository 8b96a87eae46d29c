package hunmorph

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dictionarySuffix = ".dic"
	affixSuffix      = ".aff"

	// languageKeyLen is the basename prefix length used as the language
	// key: "ru_RU" and "ru_UA" both group under "ru".
	languageKeyLen = 2
)

// ResourcePair identifies one usable stemming resource: a dictionary file
// and its paired affix file in the same directory. Both paths are
// canonical. Immutable after discovery.
type ResourcePair struct {
	Dic string
	Aff string
}

// languageKey derives the grouping key from a dictionary basename.
func languageKey(basename string) string {
	if len(basename) < languageKeyLen {
		return basename
	}
	return basename[:languageKeyLen]
}

// locateDictionaries scans cfg's candidate directories for dictionary/affix
// pairs matching cfg.Basenames and groups them by language key. It returns
// the keys in discovery order alongside the grouped pairs.
//
// Candidate directories that do not exist (or cannot even be stat'ed) are
// silently skipped; a directory that exists but cannot be canonicalized is
// a hard error, since it points at resources the process believed usable.
func locateDictionaries(cfg Config) ([]string, map[string][]ResourcePair, error) {
	dirs, err := resolveSearchDirs(cfg)
	if err != nil {
		return nil, nil, err
	}

	var languages []string
	groups := make(map[string][]ResourcePair)

	for _, base := range cfg.Basenames {
		for _, dir := range dirs {
			pair := ResourcePair{
				Dic: filepath.Join(dir, base+dictionarySuffix),
				Aff: filepath.Join(dir, base+affixSuffix),
			}
			if !isRegularFile(pair.Dic) || !isRegularFile(pair.Aff) {
				continue
			}
			key := languageKey(base)
			if _, known := groups[key]; !known {
				languages = append(languages, key)
			}
			groups[key] = append(groups[key], pair)
		}
	}
	return languages, groups, nil
}

// resolveSearchDirs canonicalizes the candidate directory list, dropping
// candidates that do not exist and collapsing candidates that resolve to
// the same directory, preserving first-seen order.
func resolveSearchDirs(cfg Config) ([]string, error) {
	candidates := append([]string(nil), cfg.SearchPaths...)
	if cfg.OS == "darwin" {
		candidates = append(candidates, cfg.DarwinSearchPaths...)
	}

	seen := make(map[string]struct{}, len(candidates))
	var dirs []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		fi, err := os.Stat(c)
		if err != nil {
			// Nonexistent or inaccessible candidates are excluded,
			// never fatal.
			continue
		}
		if !fi.IsDir() {
			continue
		}
		canon, err := canonicalPath(c)
		if err != nil {
			return nil, fmt.Errorf("%w: canonicalize %s: %w", ErrFilesystem, c, err)
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		dirs = append(dirs, canon)
	}
	return dirs, nil
}

// canonicalPath resolves symlinks and makes path absolute.
func canonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
