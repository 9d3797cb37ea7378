package codebook

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files whose extension selects no loader.
var ErrUnknownFormat = errors.New("unknown codebook format")

// Format selects a codebook file loader.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
	FormatCUE
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatCUE:
		return "cue"
	}
	return "yaml"
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// cueSchema closes the file to string-valued fields.
const cueSchema = "[string]: string"

// LoadFile parses a codebook file, choosing the loader by extension.
func LoadFile(path string) (*Codebook, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cb, err := parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cb, nil
}

// Parse parses codebook bytes in the given format.
func Parse(data []byte, format Format) (*Codebook, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, source string) (*Codebook, error) {
	var (
		entries map[string]string
		order   []string
		err     error
	)
	switch format {
	case FormatYAML, FormatJSON:
		entries, order, err = parseYAML(data)
	case FormatTOML:
		entries, err = parseTOML(data)
	case FormatCUE:
		entries, err = parseCUE(data, source)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		order = slices.Sorted(maps.Keys(entries))
	}
	for _, name := range order {
		if strings.TrimSpace(entries[name]) == "" {
			return nil, fmt.Errorf("entry %q has an empty formula", name)
		}
	}
	return build(entries, order, source), nil
}

// parseYAML walks the document node so that entry order is kept.
// JSON documents are valid YAML and go through the same path.
func parseYAML(data []byte) (map[string]string, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("yaml parse: %w", err)
	}
	entries := make(map[string]string)
	order := []string{}
	if doc.Kind == 0 {
		return entries, order, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("codebook must be a mapping of alias to formula (line %d)", root.Line)
	}
	for i := 0; i < len(root.Content)-1; i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		name := keyNode.Value
		if valNode.Kind != yaml.ScalarNode {
			return nil, nil, fmt.Errorf("entry %q: formula must be a string (line %d)", name, valNode.Line)
		}
		if _, dup := entries[name]; dup {
			return nil, nil, fmt.Errorf("entry %q defined twice (line %d)", name, keyNode.Line)
		}
		entries[name] = valNode.Value
		order = append(order, name)
	}
	return entries, order, nil
}

func parseTOML(data []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("toml parse: %w", err)
	}
	return entries, nil
}

func parseCUE(data []byte, source string) (map[string]string, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + cueSchema + "})")
	if err := schema.Err(); err != nil {
		return nil, err
	}

	filename := source
	if filename == "" {
		filename = "codebook.cue"
	}
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("cue parse: %w", err)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("cue validate: %w", err)
	}

	entries := make(map[string]string)
	if err := value.Decode(&entries); err != nil {
		return nil, fmt.Errorf("cue decode: %w", err)
	}
	return entries, nil
}
