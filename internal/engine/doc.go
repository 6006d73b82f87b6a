// Package engine bridges build specifications to an external container
// engine.
//
// The [Engine] contract is narrow: check image existence by tag, build an
// image from a specification streamed over stdin, and run a command in an
// image with forwarded runtime parameters. [Docker] implements it by driving
// the docker CLI as a subprocess with inherited stdio, so build progress and
// the interactive session stream directly to the controlling terminal.
//
// [Ensure] holds the cache policy: a build is skipped when an image with the
// content-addressed tag already exists and no rebuild is forced. The tag is
// the only cache key; the engine's image store is the only state that
// survives across invocations.
//
// Example usage:
//
//	eng := engine.NewDocker()
//
//	if err := engine.Ensure(ctx, eng, tag, strings.NewReader(spec), force); err != nil {
//	    return err
//	}
//
//	return eng.Run(ctx, tag, engine.RunOptions{
//	    Command: []string{"bash"},
//	    Workdir: cwd,
//	})
package engine
