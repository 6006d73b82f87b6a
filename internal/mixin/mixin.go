package mixin

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Line that opens and closes the metadata block.
const delimiter = "---"

// A single parsed toolchain file.
//
// A node is created by parsing exactly one file and is immutable once its
// children have been populated by the resolution pass.
type Node struct {
	Path     string  // Normalized origin path; identity key within a resolution.
	Meta     Meta    // Parsed metadata, zero-valued when the file has no metadata block.
	Script   string  // Verbatim script body, empty when the file has none.
	Children []*Node // Flattened transitive descendants in resolution order.
}

// Metadata fields of a toolchain file.
//
// Unknown keys are ignored; absent keys stay zero-valued.
type Meta struct {
	Base    string            `yaml:"base"`
	Install []string          `yaml:"install"`
	Mixin   []string          `yaml:"mixin"`
	Publish []Publish         `yaml:"publish"`
	Volume  []Volume          `yaml:"volume"`
	Env     map[string]string `yaml:"env"`
}

// Parses one toolchain file's content into a node without resolving
// references.
//
// Line endings are normalized to LF. When the first line, trimmed, is exactly
// the delimiter, everything up to the next delimiter line is YAML metadata
// and the remainder is the script; a missing closing delimiter is an error.
// Without a leading delimiter the entire content is the script. Empty content
// is an error.
func parse(path, content string) (*Node, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return &Node{Path: path, Script: strings.Join(lines, "\n")}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrUnterminated)
	}

	var meta Meta
	raw := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMetadata, err)
	}

	return &Node{
		Path:   path,
		Meta:   meta,
		Script: strings.Join(lines[end+1:], "\n"),
	}, nil
}
