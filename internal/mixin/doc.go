// Package mixin loads composable toolchain files and resolves their
// references into a flat node list.
//
// A toolchain file is an optional YAML metadata block fenced by two lines
// that are exactly "---", followed by a verbatim shell script. The metadata
// may reference other mixins by extension-less path; references are resolved
// relative to the referencing file's directory and always receive a ".yaml"
// suffix.
//
// Loading a file resolves its transitive references depth-first: each
// reference contributes its own descendants first, then itself, concatenated
// in declaration order. A path that already appeared earlier in the
// accumulated list is skipped, so diamond-shaped reference graphs collapse
// to a single occurrence at the position of the first encounter. Reference
// cycles are detected during descent and reported as errors.
//
// Example usage:
//
//	root, err := mixin.Load("mc.yaml")
//	if err != nil {
//	    return err
//	}
//
//	for _, node := range root.Children {
//	    fmt.Println(node.Path)
//	}
package mixin
