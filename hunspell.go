package hunmorph

import (
	"fmt"
	"os"
	"sync"

	hunspell "github.com/gen2brain/go-hunspell"
)

// hunspellEngine adapts a native Hunspell handle to the Engine interface.
// The native handle is not safe for concurrent calls, so queries are
// serialized per handle; independent handles still run in parallel.
type hunspellEngine struct {
	mu sync.Mutex
	h  *hunspell.Hunhandle
}

// newHunspellEngine loads the resource pair into a native Hunspell handle.
// It is the default EngineFactory used by New.
func newHunspellEngine(pair ResourcePair) (Engine, error) {
	// The native constructor gives no useful diagnostics for unreadable
	// files, so verify readability first.
	for _, path := range []string{pair.Aff, pair.Dic} {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f.Close()
	}
	h := hunspell.Hunspell(pair.Aff, pair.Dic)
	if h == nil {
		return nil, fmt.Errorf("hunspell rejected %s / %s", pair.Aff, pair.Dic)
	}
	return &hunspellEngine{h: h}, nil
}

func (e *hunspellEngine) Stem(token string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.h.Stem(token), nil
}
