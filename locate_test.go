package hunmorph

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePair creates an empty dictionary/affix pair for base under dir.
func writePair(t *testing.T, dir, base string) {
	t.Helper()
	for _, suffix := range []string{dictionarySuffix, affixSuffix} {
		if err := os.WriteFile(filepath.Join(dir, base+suffix), []byte("0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLocateGroupsByLanguageKey(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "ru_RU")
	writePair(t, dir, "uk_UA")

	languages, groups, err := locateDictionaries(Config{
		Basenames:   []string{"ru_RU", "uk_UA"},
		SearchPaths: []string{dir},
		OS:          "linux",
	})
	if err != nil {
		t.Fatalf("locateDictionaries: %v", err)
	}
	if len(languages) != 2 || languages[0] != "ru" || languages[1] != "uk" {
		t.Fatalf("languages = %v, want [ru uk]", languages)
	}
	if len(groups["ru"]) != 1 || len(groups["uk"]) != 1 {
		t.Fatalf("groups = %v, want one pair per language", groups)
	}
	want := filepath.Join(mustCanonical(t, dir), "ru_RU.dic")
	if groups["ru"][0].Dic != want {
		t.Errorf("ru dictionary = %q, want %q", groups["ru"][0].Dic, want)
	}
}

func TestLocateVariantsShareOneKey(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writePair(t, dir1, "ru_RU")
	writePair(t, dir2, "ru_RU")

	languages, groups, err := locateDictionaries(Config{
		Basenames:   []string{"ru_RU"},
		SearchPaths: []string{dir1, dir2},
		OS:          "linux",
	})
	if err != nil {
		t.Fatalf("locateDictionaries: %v", err)
	}
	if len(languages) != 1 || languages[0] != "ru" {
		t.Fatalf("languages = %v, want [ru]", languages)
	}
	if len(groups["ru"]) != 2 {
		t.Fatalf("got %d pairs under ru, want 2", len(groups["ru"]))
	}
	// Discovery order follows the search-path order.
	if !strings.HasPrefix(groups["ru"][0].Dic, mustCanonical(t, dir1)) {
		t.Errorf("first pair %q does not come from the first search path", groups["ru"][0].Dic)
	}
}

func TestLocateRequiresBothFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ru_RU.dic"), []byte("0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	languages, groups, err := locateDictionaries(Config{
		Basenames:   []string{"ru_RU"},
		SearchPaths: []string{dir},
		OS:          "linux",
	})
	if err != nil {
		t.Fatalf("locateDictionaries: %v", err)
	}
	if len(languages) != 0 || len(groups) != 0 {
		t.Errorf("orphan .dic was discovered: languages=%v groups=%v", languages, groups)
	}
}

func TestLocateSkipsMissingAndNonDirCandidates(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "uk_UA")
	file := filepath.Join(dir, "uk_UA.dic")

	languages, _, err := locateDictionaries(Config{
		Basenames:   []string{"uk_UA"},
		SearchPaths: []string{"/definitely/not/there", file, "", dir},
		OS:          "linux",
	})
	if err != nil {
		t.Fatalf("locateDictionaries: %v", err)
	}
	if len(languages) != 1 || languages[0] != "uk" {
		t.Errorf("languages = %v, want [uk]", languages)
	}
}

func TestLocateDeduplicatesAliasedDirs(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "ru_RU")
	link := filepath.Join(t.TempDir(), "alias")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	_, groups, err := locateDictionaries(Config{
		Basenames:   []string{"ru_RU"},
		SearchPaths: []string{dir, link},
		OS:          "linux",
	})
	if err != nil {
		t.Fatalf("locateDictionaries: %v", err)
	}
	if len(groups["ru"]) != 1 {
		t.Errorf("aliased dir scanned twice: %v", groups["ru"])
	}
}

func TestLocateDarwinPathsAreGatedByOS(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "uk_UA")
	cfg := Config{
		Basenames:         []string{"uk_UA"},
		SearchPaths:       nil,
		DarwinSearchPaths: []string{dir},
	}

	cfg.OS = "linux"
	languages, _, err := locateDictionaries(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(languages) != 0 {
		t.Errorf("darwin paths consulted on linux: %v", languages)
	}

	cfg.OS = "darwin"
	languages, _, err = locateDictionaries(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(languages) != 1 {
		t.Errorf("darwin paths not consulted on darwin: %v", languages)
	}
}

func TestNewFailsWhenEngineCannotLoad(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "ru_RU")

	_, err := New(Config{
		Basenames:   []string{"ru_RU"},
		SearchPaths: []string{dir},
		OS:          "linux",
	}, WithEngineFactory(func(pair ResourcePair) (Engine, error) {
		return nil, errors.New("malformed affix data")
	}))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("New error = %v, want ErrConfig", err)
	}
}

func mustCanonical(t *testing.T, path string) string {
	t.Helper()
	canon, err := canonicalPath(path)
	if err != nil {
		t.Fatal(err)
	}
	return canon
}
