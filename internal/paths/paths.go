package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (

	// File name of the unnamed toolchain.
	defaultFile = "mc.yaml"

	// Dotfolder holding toolchain files out of the project root.
	dotFolder = ".mc"

	// File mapping alias names to toolchain paths.
	aliasFile = ".mc2aliases.yaml"
)

var ErrNotFound = errors.New("toolchain not found")

// Returns the path of the first existing toolchain file for the given
// machine name.
//
// An empty name selects the unnamed toolchain. The returned error for a
// missing toolchain lists every candidate path that was searched.
func Lookup(machine string) (string, error) {
	candidates := Candidates(machine)

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w, searched:\n  %s", ErrNotFound, strings.Join(candidates, "\n  "))
}

// Returns the ordered candidate paths for a machine name.
//
// For a named machine the alias target, when one resolves, is tried first.
func Candidates(machine string) []string {
	if machine == "" {
		return []string{
			defaultFile,
			filepath.Join(dotFolder, defaultFile),
		}
	}

	var candidates []string
	if target, ok := aliasTarget(machine); ok {
		candidates = append(candidates, target)
	}

	file := machine + ".yaml"
	return append(candidates,
		file,
		filepath.Join(dotFolder, file),
		filepath.Join(dotFolder, machine, file),
	)
}

// Looks up a machine name in the first existing alias file.
//
// Returns false when no alias file exists, the file has no entry for the
// name, or the file cannot be parsed.
func aliasTarget(machine string) (string, bool) {
	for _, path := range []string{aliasFile, filepath.Join(dotFolder, aliasFile)} {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var aliases map[string]string
		if err := yaml.Unmarshal(content, &aliases); err != nil {
			continue
		}

		if target, ok := aliases[machine]; ok {
			return resolveAlias(path, target), true
		}
	}
	return "", false
}

// Resolves an alias target against the alias file's directory and forces a
// .yaml extension.
func resolveAlias(aliasPath, target string) string {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(aliasPath), target)
	}
	ext := filepath.Ext(target)
	return strings.TrimSuffix(target, ext) + ".yaml"
}
