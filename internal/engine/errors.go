package engine

import "errors"

var (
	ErrBuild = errors.New("failed to build image")
	ErrRun   = errors.New("failed to run container")
)
