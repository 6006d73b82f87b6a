package dockerfile

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/minicross/mc/internal/hostid"
	"github.com/minicross/mc/internal/mixin"
)

// Retained install packages of one contributing node.
type installBatch struct {
	node     *mixin.Node
	packages []string
}

// Converts a fully resolved mixin tree into a build specification.
//
// The merge order is the root's flattened children (already in resolution
// order) followed by the root itself. Exactly one node across the merge
// order may declare a base image. A package name is installed at most once;
// the earliest node that lists it wins and is named in the provenance
// comment. Publish, volume, and env entries accumulate without
// de-duplication into the runtime parameters.
//
// No partial specification is emitted: any validation failure returns before
// the first instruction is synthesized.
func Convert(root *mixin.Node, id hostid.Identity) (*Dockerfile, error) {
	nodes := append(slices.Clone(root.Children), root)

	df := New()

	var baseNode *mixin.Node
	var batches []installBatch
	var scripts []*mixin.Node
	installed := make(map[string]struct{})

	for _, node := range nodes {
		if node.Meta.Base != "" {
			if baseNode != nil {
				return nil, fmt.Errorf("%w: %s, %s", ErrMultipleBases, baseNode.Path, node.Path)
			}
			baseNode = node
		}

		var retained []string
		for _, pkg := range node.Meta.Install {
			if _, ok := installed[pkg]; ok {
				continue
			}
			installed[pkg] = struct{}{}
			retained = append(retained, pkg)
		}
		if len(retained) > 0 {
			batches = append(batches, installBatch{node: node, packages: retained})
		}

		if node.Script != "" {
			scripts = append(scripts, node)
		}

		df.AddPublishes(node.Meta.Publish...)
		df.AddVolumes(node.Meta.Volume...)
		for _, key := range sortedKeys(node.Meta.Env) {
			df.AddEnv(key, node.Meta.Env[key])
		}
	}

	if baseNode == nil {
		return nil, ErrNoBase
	}

	base := baseNode.Meta.Base
	pm, err := PackageManagerFor(base)
	if err != nil {
		return nil, err
	}

	df.Add(From{Image: base})
	df.Add(
		Comment{Text: "Update outdated default dependencies"},
		Run{Command: pm.upgrade()},
	)
	df.Add(pm.bootstrap()...)

	for _, batch := range batches {
		df.Add(
			Comment{Text: "Installs from: " + batch.node.Path},
			pm.Install(batch.packages),
		)
	}

	df.Add(provisionUser(id)...)

	if err := copyContextDirs(df, root.Path); err != nil {
		return nil, err
	}

	for _, node := range scripts {
		df.Add(
			Comment{Text: "Exec script from: " + node.Path},
			Run{Command: fmt.Sprintf("<<EOR\n/bin/sh -c %s\nEOR", node.Script)},
		)
	}

	df.Add(
		Comment{Text: "Exec bash as entrypoint"},
		Run{Command: "/usr/bin/env bash"},
	)

	return df, nil
}

// Returns the instructions that mirror the invoking host user inside the
// image: matching group, user, owned home directory, and the final user
// switch.
func provisionUser(id hostid.Identity) []Instruction {
	gid := id.GID
	return []Instruction{
		Comment{Text: "Configure user"},
		Run{Command: fmt.Sprintf("groupadd --gid %d %s", id.GID, id.Group)},
		Run{Command: fmt.Sprintf("useradd --gid %d --uid %d --home /home/%s %s", id.GID, id.UID, id.Username, id.Username)},
		Run{Command: fmt.Sprintf("mkdir -p /home/%s", id.Username)},
		Run{Command: fmt.Sprintf("chown %d:%d /home/%s", id.UID, id.GID, id.Username)},
		User{UID: id.UID, GID: &gid},
	}
}

// Copies the root file's sibling directories into the image root.
//
// Applies only when the root file's directory is nested at least two path
// segments deep (the per-name subfolder layout). Every immediate non-hidden
// subdirectory gets one COPY to /<name>.
func copyContextDirs(df *Dockerfile, rootPath string) error {
	dir := filepath.Dir(rootPath)
	if segmentCount(dir) < 2 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing context directory %s: %w", dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, entry.Name())
		}
	}

	if len(dirs) > 0 {
		df.Add(Comment{Text: "Adding context dirs"})
	}
	for _, name := range dirs {
		df.Add(Copy{Src: filepath.Join(dir, name), Dst: "/" + name})
	}
	return nil
}

// Counts the path segments of a directory; the filesystem root counts as
// one segment.
func segmentCount(dir string) int {
	dir = filepath.Clean(dir)
	if dir == "." {
		return 0
	}

	count := 0
	if filepath.IsAbs(dir) {
		count++
	}
	for _, seg := range strings.Split(dir, string(filepath.Separator)) {
		if seg != "" {
			count++
		}
	}
	return count
}

// Returns the map keys in sorted order, for deterministic env forwarding.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
