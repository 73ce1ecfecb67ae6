package mode

import (
	"fmt"
	"sort"
	"sync"
)

// Info describes a registered dialect.
type Info struct {
	Name string   // Display name, e.g. "Huginn"
	MIME string   // e.g. "text/x-huginn"
	Mode string   // Engine name, e.g. "clike"
	Ext  []string // File extensions without the dot
}

type registration struct {
	info    Info
	factory func() *Mode
	hints   []string
}

var registry = struct {
	sync.RWMutex
	byMIME map[string]*registration
}{byMIME: make(map[string]*registration)}

// Register associates a dialect with its MIME type. Hosts call it once at
// startup; registering the same MIME type twice is an error.
func Register(info Info, factory func() *Mode) error {
	if info.MIME == "" {
		return fmt.Errorf("register %q: empty MIME type", info.Name)
	}
	registry.Lock()
	defer registry.Unlock()
	if _, exists := registry.byMIME[info.MIME]; exists {
		return fmt.Errorf("register %q: MIME type %s already registered", info.Name, info.MIME)
	}
	registry.byMIME[info.MIME] = &registration{info: info, factory: factory}
	return nil
}

// Lookup finds a dialect by MIME type, display name or file extension
// and builds a fresh Mode for it.
func Lookup(key string) (*Mode, Info, bool) {
	registry.RLock()
	defer registry.RUnlock()
	for _, r := range registry.byMIME {
		if r.info.MIME == key || r.info.Name == key || containsString(r.info.Ext, key) {
			return r.factory(), r.info, true
		}
	}
	return nil, Info{}, false
}

// Infos lists registered dialects ordered by MIME type.
func Infos() []Info {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Info, 0, len(registry.byMIME))
	for _, r := range registry.byMIME {
		out = append(out, r.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MIME < out[j].MIME })
	return out
}

// SetHintWords records completion words for a registered MIME type.
func SetHintWords(mime string, words []string) error {
	registry.Lock()
	defer registry.Unlock()
	r, ok := registry.byMIME[mime]
	if !ok {
		return fmt.Errorf("hint words: MIME type %s is not registered", mime)
	}
	r.hints = append([]string(nil), words...)
	return nil
}

// HintWords returns the completion words for a MIME type.
func HintWords(mime string) []string {
	registry.RLock()
	defer registry.RUnlock()
	if r, ok := registry.byMIME[mime]; ok {
		return append([]string(nil), r.hints...)
	}
	return nil
}

// unregister removes a MIME type; used by tests.
func unregister(mime string) {
	registry.Lock()
	defer registry.Unlock()
	delete(registry.byMIME, mime)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
