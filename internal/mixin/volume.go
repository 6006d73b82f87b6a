package mixin

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mount options accepted in a volume specification.
var volumeOptions = map[string]bool{
	"ro":            true,
	"readonly":      true,
	"volume-nocopy": true,
}

// A bind mount forwarded into the machine.
//
// The text form is "host_path:machine_path[:opt,...]", matching the flag
// syntax of the container engine's --volume option.
type Volume struct {
	HostPath    string
	MachinePath string
	Options     []string // Subset of {ro, readonly, volume-nocopy}.
}

// Parses a volume specification from its text form.
//
// Unknown mount options are rejected.
func ParseVolume(s string) (Volume, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Volume{}, fmt.Errorf("%w: %q", ErrVolumeFormat, s)
	}

	v := Volume{HostPath: parts[0], MachinePath: parts[1]}
	if len(parts) == 3 {
		v.Options = strings.Split(parts[2], ",")
		for _, opt := range v.Options {
			if !volumeOptions[opt] {
				return Volume{}, fmt.Errorf("%w: unknown option %q in %q", ErrVolumeFormat, opt, s)
			}
		}
	}
	return v, nil
}

// Returns the text form of the volume specification.
//
// Parsing the result reproduces the value exactly.
func (v Volume) String() string {
	s := v.HostPath + ":" + v.MachinePath
	if len(v.Options) > 0 {
		s += ":" + strings.Join(v.Options, ",")
	}
	return s
}

// Decodes a volume specification from its YAML scalar text form.
func (v *Volume) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParseVolume(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// Encodes the volume specification as its YAML scalar text form.
func (v Volume) MarshalYAML() (any, error) {
	return v.String(), nil
}
