// Package dockerfile synthesizes reproducible container build specifications
// from resolved mixin trees.
//
// A [Dockerfile] is an ordered instruction sequence plus runtime parameters
// (published ports, volumes, environment variables) that are forwarded to
// the container at run time but deliberately excluded from the build
// specification itself.
//
// [Convert] walks the merge order of a resolved tree (flattened descendants,
// then the root), validates that exactly one node declares a base image,
// resolves the base's package-manager dialect, merges install lists and
// scripts with first-writer-wins de-duplication, and emits a fixed
// instruction sequence.
//
// The canonical text serialization is deterministic; its sha256 digest,
// prefixed with a fixed namespace, is the image tag. Two specifications with
// byte-identical canonical text collapse to the same tag, which is the sole
// de-duplication key for the build cache.
//
// Example usage:
//
//	df, err := dockerfile.Convert(root, identity)
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(df.Tag())
package dockerfile
