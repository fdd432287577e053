package internal

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// SettingsView is the typed reading of config.toml that handlers use
type SettingsView struct {
	User              string
	FontSize          int
	FontFamily        string
	BackgroundImage   string
	BackgroundOpacity float64
	Theme             string
	Themes            []string
	ReadTheme         string
	ReadThemes        []string
	WelcomeTitle      string
	WelcomeMsg        string
	HelpMsg           string
	Downloads         []DownloadEntry
}

// Defaults applied when config.toml leaves a key out
const (
	DefaultUser       = "Guest"
	DefaultFontSize   = 18
	DefaultFontFamily = "monospace"
	DefaultTheme      = "default"
)

// SeedFunc supplies the document used when the store holds none
type SeedFunc func() (string, error)

// StaticSeed returns a SeedFunc that always yields doc
func StaticSeed(doc string) SeedFunc {
	return func() (string, error) { return doc, nil }
}

// SettingsStore owns the config.toml document. Reads see one immutable
// snapshot; an update builds a new document, persists it and only then
// swaps it in.
type SettingsStore struct {
	mu    sync.RWMutex
	store StateStore
	seed  SeedFunc
	doc   map[string]interface{}
	raw   string
	view  SettingsView
}

// NewSettingsStore creates a settings store. Call Reload before use.
func NewSettingsStore(store StateStore, seed SeedFunc) *SettingsStore {
	if seed == nil {
		seed = StaticSeed(DefaultConfig())
	}
	return &SettingsStore{store: store, seed: seed}
}

// Reload reads the document from the state store, falling back to the seed
// when none is stored or the stored one no longer parses
func (s *SettingsStore) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, ok, err := s.store.Get(SettingsKey)
	if err != nil {
		LogWarn("Failed to read stored settings: %v", err)
		ok = false
	}
	if ok {
		doc, perr := parseSettings(raw)
		if perr == nil {
			s.swap(doc, raw)
			return nil
		}
		LogWarn("Stored settings are invalid, reseeding: %v", perr)
	}

	raw, err = s.seed()
	if err != nil {
		return fmt.Errorf("failed to load seed settings: %w", err)
	}
	doc, err := parseSettings(raw)
	if err != nil {
		return fmt.Errorf("failed to parse seed settings: %w", err)
	}
	if err := s.store.Put(SettingsKey, raw); err != nil {
		LogWarn("Failed to persist seed settings: %v", err)
	}
	s.swap(doc, raw)
	return nil
}

// Reset forgets the stored document and reloads the seed
func (s *SettingsStore) Reset(ctx context.Context) error {
	if err := s.store.Delete(SettingsKey); err != nil {
		return &PersistenceError{Op: "settings", Err: err}
	}
	return s.Reload(ctx)
}

// View returns the typed settings
func (s *SettingsStore) View() SettingsView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Themes = append([]string(nil), s.view.Themes...)
	v.ReadThemes = append([]string(nil), s.view.ReadThemes...)
	v.Downloads = append([]DownloadEntry(nil), s.view.Downloads...)
	return v
}

// Raw returns the document text as last persisted
func (s *SettingsStore) Raw() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Read returns the value at a dotted path such as "ui.fontSize"
func (s *SettingsStore) Read(path string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupPath(s.doc, path)
}

// Update deep-merges partial into the document. Tables merge key by key;
// every other value, arrays included, is replaced. It returns false, leaving
// the settings untouched, when no document is loaded or persisting fails.
func (s *SettingsStore) Update(partial map[string]interface{}) bool {
	if err := s.update(partial); err != nil {
		LogError("Failed to update settings: %v", err)
		return false
	}
	return true
}

func (s *SettingsStore) update(partial map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("settings not loaded")
	}

	next := deepMerge(deepCopy(s.doc), partial)
	raw, err := encodeSettings(next)
	if err != nil {
		return err
	}
	if err := s.store.Put(SettingsKey, raw); err != nil {
		return &PersistenceError{Op: "settings", Err: err}
	}
	s.doc, s.raw, s.view = next, raw, deriveView(next)
	return nil
}

// Replace swaps in a whole new document, as written by an editor. The text
// must parse; it is stored verbatim so comments survive.
func (s *SettingsStore) Replace(raw string) error {
	doc, err := parseSettings(raw)
	if err != nil {
		return &UsageError{Msg: fmt.Sprintf("invalid TOML: %v", err)}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Put(SettingsKey, raw); err != nil {
		return &PersistenceError{Op: "settings", Err: err}
	}
	s.doc, s.raw, s.view = doc, raw, deriveView(doc)
	return nil
}

func (s *SettingsStore) swap(doc map[string]interface{}, raw string) {
	s.mu.Lock()
	s.doc, s.raw, s.view = doc, raw, deriveView(doc)
	s.mu.Unlock()
}

func parseSettings(raw string) (map[string]interface{}, error) {
	doc := make(map[string]interface{})
	if _, err := toml.Decode(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeSettings(doc map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.String(), nil
}

func lookupPath(doc map[string]interface{}, path string) (interface{}, bool) {
	if doc == nil || path == "" {
		return nil, false
	}
	var cur interface{} = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func deepMerge(dst, src map[string]interface{}) map[string]interface{} {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]interface{})
		dstMap, dstIsMap := dst[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			dst[k] = deepMerge(dstMap, srcMap)
			continue
		}
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopy(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopy(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}

func deriveView(doc map[string]interface{}) SettingsView {
	v := SettingsView{
		User:              stringAt(doc, "app.user", DefaultUser),
		FontSize:          DefaultFontSize,
		FontFamily:        stringAt(doc, "ui.fontFamily", DefaultFontFamily),
		BackgroundImage:   stringAt(doc, "background.image", ""),
		BackgroundOpacity: 1.0,
		Theme:             stringAt(doc, "theme.current", DefaultTheme),
		Themes:            stringsAt(doc, "theme.available"),
		ReadTheme:         stringAt(doc, "read_theme.current", DefaultTheme),
		ReadThemes:        stringsAt(doc, "read_theme.available"),
		WelcomeTitle:      stringAt(doc, "welcome.title", ""),
		WelcomeMsg:        stringAt(doc, "welcome.welcomeMsg", ""),
		HelpMsg:           stringAt(doc, "welcome.helpMsg", ""),
		Downloads:         downloadsAt(doc),
	}
	if n, err := strconv.Atoi(stringAt(doc, "ui.fontSize", "")); err == nil {
		v.FontSize = n
	}
	if f, err := strconv.ParseFloat(stringAt(doc, "background.opacity", ""), 64); err == nil {
		v.BackgroundOpacity = f
	}
	return v
}

func stringAt(doc map[string]interface{}, path, def string) string {
	v, ok := lookupPath(doc, path)
	if !ok {
		return def
	}
	s := fmt.Sprint(v)
	if s == "" {
		return def
	}
	return s
}

func stringsAt(doc map[string]interface{}, path string) []string {
	v, ok := lookupPath(doc, path)
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, fmt.Sprint(e))
	}
	return out
}

func downloadsAt(doc map[string]interface{}) []DownloadEntry {
	raw, ok := doc["download"]
	if !ok {
		return nil
	}
	var tables []map[string]interface{}
	switch t := raw.(type) {
	case []map[string]interface{}:
		tables = t
	case []interface{}:
		for _, e := range t {
			if m, ok := e.(map[string]interface{}); ok {
				tables = append(tables, m)
			}
		}
	}
	out := make([]DownloadEntry, 0, len(tables))
	for _, m := range tables {
		out = append(out, DownloadEntry{
			Name:  stringAt(m, "name", ""),
			Title: stringAt(m, "title", ""),
			Date:  stringAt(m, "date", ""),
			URL:   stringAt(m, "url", ""),
		})
	}
	return out
}
