package mixin

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// A port forwarded from the host into the machine.
//
// The text form is "[host_ip:]host_port:machine_port", matching the flag
// syntax of the container engine's --publish option.
type Publish struct {
	HostIP      string // Optional host interface address.
	HostPort    uint16
	MachinePort uint16
}

// Parses a publish specification from its text form.
func ParsePublish(s string) (Publish, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Publish{}, fmt.Errorf("%w: %q", ErrPublishFormat, s)
	}

	hostPort, err := parsePort(parts[len(parts)-2])
	if err != nil {
		return Publish{}, fmt.Errorf("%w: %q: %v", ErrPublishFormat, s, err)
	}
	machinePort, err := parsePort(parts[len(parts)-1])
	if err != nil {
		return Publish{}, fmt.Errorf("%w: %q: %v", ErrPublishFormat, s, err)
	}

	p := Publish{HostPort: hostPort, MachinePort: machinePort}
	if len(parts) == 3 {
		p.HostIP = parts[0]
	}
	return p, nil
}

// Parses a 16-bit port number.
func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(port), nil
}

// Returns the text form of the publish specification.
//
// Parsing the result reproduces the value exactly.
func (p Publish) String() string {
	if p.HostIP != "" {
		return fmt.Sprintf("%s:%d:%d", p.HostIP, p.HostPort, p.MachinePort)
	}
	return fmt.Sprintf("%d:%d", p.HostPort, p.MachinePort)
}

// Decodes a publish specification from its YAML scalar text form.
func (p *Publish) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParsePublish(s)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

// Encodes the publish specification as its YAML scalar text form.
func (p Publish) MarshalYAML() (any, error) {
	return p.String(), nil
}
