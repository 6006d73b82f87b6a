package mixin

import (
	"fmt"
	"os"
	"path/filepath"
)

// Tracks one recursive resolution pass.
//
// Nodes are kept in an arena keyed by normalized path; the accumulated order
// holds each node exactly once, at the position of its first encounter. The
// active set tracks the in-progress descent, separately from the accumulated
// order, so reference cycles fail fast instead of recursing unboundedly.
type resolver struct {
	nodes  map[string]*Node    // Arena of parsed nodes, keyed by normalized path.
	order  []*Node             // Flattened descendants in resolution order.
	active map[string]struct{} // Paths currently being descended into.
}

// Loads a toolchain file and resolves its mixin references into a flat,
// de-duplicated, order-preserving descendant list.
//
// Each reference contributes its own transitive descendants followed by
// itself; per-reference results are concatenated in declaration order. A
// path already present in the accumulated order is skipped (first occurrence
// wins). Any unreadable referenced file and any reference cycle aborts the
// whole load.
func Load(path string) (*Node, error) {
	path = filepath.Clean(path)

	root, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		nodes:  map[string]*Node{path: root},
		active: map[string]struct{}{path: {}},
	}
	if err := r.descend(root); err != nil {
		return nil, err
	}

	root.Children = r.order
	return root, nil
}

// Resolves the references of one node depth-first.
//
// A reference to a path in the active set is a cycle. A reference to a path
// already in the arena (and not active) was fully resolved earlier and is
// skipped without re-reading the file.
func (r *resolver) descend(parent *Node) error {
	for _, ref := range parent.Meta.Mixin {
		path := resolveRef(parent.Path, ref)

		if _, ok := r.active[path]; ok {
			return fmt.Errorf("%w: %s (referenced from %s)", ErrCycle, path, parent.Path)
		}
		if _, ok := r.nodes[path]; ok {
			continue
		}

		node, err := loadFile(path)
		if err != nil {
			return err
		}

		r.nodes[path] = node
		r.active[path] = struct{}{}
		if err := r.descend(node); err != nil {
			return err
		}
		delete(r.active, path)

		r.order = append(r.order, node)
	}
	return nil
}

// Reads and parses a single toolchain file.
func loadFile(path string) (*Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading mixin %s: %w", path, err)
	}
	return parse(path, string(content))
}

// Normalizes a mixin reference to its target file path.
//
// References are extension-less by convention; a ".yaml" suffix is always
// appended. Relative references resolve against the referencing file's
// directory, not the process working directory.
func resolveRef(parentPath, ref string) string {
	ref += ".yaml"
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(filepath.Dir(parentPath), ref)
}
