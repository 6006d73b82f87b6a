// Parses flags and drives the one-shot build-and-run flow.
//
// The tool accepts the following flags:
//
//	-d, --dry-run   Print the generated Dockerfile instead of building.
//	-F, --force     Force a rebuild of the image.
//	-v, --volumes   Volumes forwarded to the container run.
//	-p, --publish   Published ports forwarded to the container run.
//	    --quiet     Suppress informational output.
//	    --debug     Enable debug output.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level before the flow
// starts.
package cli
