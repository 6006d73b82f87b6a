package dockerfile

import "fmt"

// One line of a generated build specification.
//
// The instruction set is closed: FROM, comment, ENV, ARG, RUN, USER, and
// COPY. Each variant renders a fixed textual form; the rendered text is what
// gets hashed for the image tag, so the forms must stay stable.
type Instruction interface {
	fmt.Stringer
}

// The base image declaration.
type From struct {
	Image string
}

func (f From) String() string {
	return "FROM " + f.Image
}

// A provenance or section comment.
type Comment struct {
	Text string
}

func (c Comment) String() string {
	return "# " + c.Text
}

// A build-time and runtime environment variable.
type Env struct {
	Key, Value string
}

func (e Env) String() string {
	return fmt.Sprintf("ENV %s=%s", e.Key, e.Value)
}

// A build-time only variable.
type Arg struct {
	Key, Value string
}

func (a Arg) String() string {
	return fmt.Sprintf("ARG %s=%s", a.Key, a.Value)
}

// A shell command executed during the build.
type Run struct {
	Command string
}

func (r Run) String() string {
	return "RUN " + r.Command
}

// Switches the active build and runtime user.
type User struct {
	UID uint32
	GID *uint32 // Optional; omitted from the text form when nil.
}

func (u User) String() string {
	if u.GID != nil {
		return fmt.Sprintf("USER %d:%d", u.UID, *u.GID)
	}
	return fmt.Sprintf("USER %d", u.UID)
}

// Copies a build-context path into the image.
type Copy struct {
	Src, Dst string
}

func (c Copy) String() string {
	return fmt.Sprintf("COPY %s %s", c.Src, c.Dst)
}
