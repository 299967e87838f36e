package keymap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a keymap file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return "unknown"
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Section names in a keymap document. Any other top-level key is a
// global binding.
const (
	sectionGlobal   = "global"
	sectionContexts = "contexts"
)

// Loader loads bindings from keymap files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads bindings from a file, choosing the format by extension.
func (l *Loader) LoadFile(path string) (*Builder, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	b, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadReader loads bindings from r in the given format.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Builder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	raw := make(map[string]any)
	if len(bytes.TrimSpace(data)) > 0 {
		switch format {
		case FormatTOML:
			err = toml.Unmarshal(data, &raw)
		case FormatYAML:
			err = yaml.Unmarshal(data, &raw)
		case FormatJSON:
			err = json.Unmarshal(data, &raw)
		default:
			err = fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s keymap: %w", format, err)
		}
	}

	return FromMap(raw)
}

// LoadAll loads every keymap file in the search paths. Files are applied
// in lexical order with later files overriding earlier ones.
func (l *Loader) LoadAll() (*Builder, error) {
	result := NewBuilder()

	for _, dir := range l.searchPaths {
		var paths []string
		for _, pattern := range []string{"*.toml", "*.yaml", "*.yml", "*.json"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("searching %s: %w", dir, err)
			}
			paths = append(paths, matches...)
		}
		sort.Strings(paths)

		for _, path := range paths {
			b, err := l.LoadFile(path)
			if err != nil {
				return nil, err
			}
			result.Override(b)
		}
	}

	return result, nil
}

// FromMap converts a decoded keymap document into a builder.
//
// The document maps action names to a key string or a list of key
// strings, either at the top level or under "global", with per-context
// tables under "contexts".
func FromMap(raw map[string]any) (*Builder, error) {
	b := NewBuilder()

	for _, name := range sortedKeys(raw) {
		value := raw[name]
		switch name {
		case sectionGlobal:
			section, ok := asMap(value)
			if !ok {
				return nil, fmt.Errorf("keymap: %q must be a table", sectionGlobal)
			}
			if err := bindSection(b, "", section); err != nil {
				return nil, err
			}
		case sectionContexts:
			contexts, ok := asMap(value)
			if !ok {
				return nil, fmt.Errorf("keymap: %q must be a table", sectionContexts)
			}
			for _, ctxName := range sortedKeys(contexts) {
				section, ok := asMap(contexts[ctxName])
				if !ok {
					return nil, fmt.Errorf("keymap: context %q must be a table", ctxName)
				}
				if err := bindSection(b, ctxName, section); err != nil {
					return nil, err
				}
			}
		default:
			if err := bindSection(b, "", map[string]any{name: value}); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

func bindSection(b *Builder, context string, section map[string]any) error {
	for _, action := range sortedKeys(section) {
		keys, err := keyList(section[action])
		if err != nil {
			return fmt.Errorf("keymap: action %q: %w", action, err)
		}
		if context == "" {
			b.BindMulti(Action(action), keys...)
			continue
		}
		b.Context(context, func(cb *Builder) {
			cb.BindMulti(Action(action), keys...)
		})
	}
	return nil
}

// keyList accepts a single key string or a list of key strings.
func keyList(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d is %T, want string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("value is %T, want string or list of strings", v)
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
