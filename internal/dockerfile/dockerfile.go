package dockerfile

import (
	"io"
	"strings"

	"github.com/minicross/mc/internal/mixin"
	"github.com/opencontainers/go-digest"
)

// Namespace prefixed to the content hash to form the image tag.
const tagNamespace = "mini-cross2"

// A runtime environment variable forwarded to the container.
type EnvVar struct {
	Key, Value string
}

// An ordered build-instruction sequence plus the runtime parameters
// forwarded to the container engine at run time.
//
// Runtime parameters are append-only and may contain duplicates; they map
// 1:1 to forwarded engine flags. They are excluded from the canonical text,
// so changing forwarded ports, mounts, or environment never changes the tag.
type Dockerfile struct {
	instructions []Instruction
	publishes    []mixin.Publish
	volumes      []mixin.Volume
	envs         []EnvVar
}

// Creates an empty [Dockerfile].
func New() *Dockerfile {
	return &Dockerfile{}
}

// Appends instructions to the build sequence.
func (d *Dockerfile) Add(instructions ...Instruction) {
	d.instructions = append(d.instructions, instructions...)
}

// Appends published ports to the runtime parameters.
func (d *Dockerfile) AddPublishes(publishes ...mixin.Publish) {
	d.publishes = append(d.publishes, publishes...)
}

// Appends volumes to the runtime parameters.
func (d *Dockerfile) AddVolumes(volumes ...mixin.Volume) {
	d.volumes = append(d.volumes, volumes...)
}

// Appends one environment variable to the runtime parameters.
func (d *Dockerfile) AddEnv(key, value string) {
	d.envs = append(d.envs, EnvVar{Key: key, Value: value})
}

// Returns the accumulated published ports.
func (d *Dockerfile) Publishes() []mixin.Publish {
	return d.publishes
}

// Returns the accumulated volumes.
func (d *Dockerfile) Volumes() []mixin.Volume {
	return d.volumes
}

// Returns the accumulated runtime environment variables.
func (d *Dockerfile) Envs() []EnvVar {
	return d.envs
}

// Writes the canonical text: one instruction per line, with a blank line
// inserted immediately before every comment.
func (d *Dockerfile) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, in := range d.instructions {
		line := in.String() + "\n"
		if _, ok := in.(Comment); ok {
			line = "\n" + line
		}
		n, err := io.WriteString(w, line)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Returns the canonical text as a string.
func (d *Dockerfile) String() string {
	var sb strings.Builder
	d.WriteTo(&sb)
	return sb.String()
}

// Returns the content-addressed image tag.
//
// The tag is the namespace, a dash, and the lowercase hex sha256 digest of
// the canonical text. Identical canonical text always yields the same tag;
// this is the sole cache key for skipping rebuilds.
func (d *Dockerfile) Tag() string {
	return tagNamespace + "-" + digest.FromString(d.String()).Encoded()
}
