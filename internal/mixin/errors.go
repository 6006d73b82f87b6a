package mixin

import "errors"

var (
	ErrEmptyFile     = errors.New("toolchain file is empty")
	ErrUnterminated  = errors.New("metadata opened with --- but missing closing ---")
	ErrMetadata      = errors.New("invalid metadata")
	ErrCycle         = errors.New("cyclic mixin reference")
	ErrPublishFormat = errors.New("invalid publish format, want [<host_ip>:]<host_port>:<machine_port>")
	ErrVolumeFormat  = errors.New("invalid volume format, want <host_path>:<machine_path>[:<ro|readonly|volume-nocopy,...>]")
)
