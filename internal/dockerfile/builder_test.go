package dockerfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minicross/mc/internal/hostid"
	"github.com/minicross/mc/internal/mixin"
)

// Fixed identity so synthesized user instructions are predictable.
var testIdentity = hostid.Identity{
	UID:      1000,
	GID:      1000,
	Username: "dev",
	Group:    "dev",
}

func TestConvertNoBase(t *testing.T) {
	root := &mixin.Node{Path: "a.yaml", Meta: mixin.Meta{Install: []string{"git"}}}

	_, err := Convert(root, testIdentity)
	if !errors.Is(err, ErrNoBase) {
		t.Fatalf("err = %v, want ErrNoBase", err)
	}
}

func TestConvertMultipleBases(t *testing.T) {
	root := &mixin.Node{
		Path: "a.yaml",
		Meta: mixin.Meta{Base: "ubuntu:22.04"},
		Children: []*mixin.Node{
			{Path: "b.yaml", Meta: mixin.Meta{Base: "alpine:3.20"}},
		},
	}

	_, err := Convert(root, testIdentity)
	if !errors.Is(err, ErrMultipleBases) {
		t.Fatalf("err = %v, want ErrMultipleBases", err)
	}

	// Both contributing paths are named.
	for _, path := range []string{"a.yaml", "b.yaml"} {
		if !strings.Contains(err.Error(), path) {
			t.Fatalf("err = %v, want it to name %s", err, path)
		}
	}
}

func TestConvertUnknownBase(t *testing.T) {
	root := &mixin.Node{Path: "a.yaml", Meta: mixin.Meta{Base: "slackware:15.0"}}

	_, err := Convert(root, testIdentity)
	if !errors.Is(err, ErrUnknownBase) {
		t.Fatalf("err = %v, want ErrUnknownBase", err)
	}
}

func TestConvertInstallDeduplication(t *testing.T) {
	root := &mixin.Node{
		Path: "a.yaml",
		Meta: mixin.Meta{Base: "ubuntu:22.04"},
		Children: []*mixin.Node{
			{Path: "b.yaml", Meta: mixin.Meta{Install: []string{"git", "make"}}},
			{Path: "c.yaml", Meta: mixin.Meta{Install: []string{"git", "curl"}}},
		},
	}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	text := df.String()

	// git is installed exactly once, attributed to b.yaml (first in
	// resolution order); c.yaml still contributes curl.
	if got := strings.Count(text, " git"); got != 1 {
		t.Fatalf("git appears %d times, want 1:\n%s", got, text)
	}
	if !strings.Contains(text, "# Installs from: b.yaml\nRUN apt install -y git make") {
		t.Fatalf("missing b.yaml install batch:\n%s", text)
	}
	if !strings.Contains(text, "# Installs from: c.yaml\nRUN apt install -y curl") {
		t.Fatalf("missing c.yaml install batch:\n%s", text)
	}
}

func TestConvertEndToEnd(t *testing.T) {
	root := &mixin.Node{
		Path: "mc.yaml",
		Meta: mixin.Meta{
			Base:    "ubuntu:22.04",
			Install: []string{"curl", "git"},
		},
		Script: "echo hello",
	}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	text := df.String()

	if !strings.HasPrefix(text, "FROM ubuntu:22.04\n") {
		t.Fatalf("spec does not start with FROM:\n%s", text)
	}

	if got := strings.Count(text, "RUN apt install -y curl git"); got != 1 {
		t.Fatalf("install command appears %d times, want 1:\n%s", got, text)
	}

	wantScript := "# Exec script from: mc.yaml\nRUN <<EOR\n/bin/sh -c echo hello\nEOR\n"
	if !strings.Contains(text, wantScript) {
		t.Fatalf("missing script block:\n%s", text)
	}

	wantTail := "# Exec bash as entrypoint\nRUN /usr/bin/env bash\n"
	if !strings.HasSuffix(text, wantTail) {
		t.Fatalf("spec does not end with the placeholder entrypoint:\n%s", text)
	}

	// The script block comes after the installs and before the entrypoint.
	if strings.Index(text, wantScript) < strings.Index(text, "apt install -y curl git") {
		t.Fatalf("script block precedes installs:\n%s", text)
	}

	// Tag is stable across repeated conversions of identical input.
	df2, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("second Convert failed: %v", err)
	}
	if df.Tag() != df2.Tag() {
		t.Fatalf("tag differs across conversions: %q vs %q", df.Tag(), df2.Tag())
	}
}

func TestConvertUserProvisioning(t *testing.T) {
	root := &mixin.Node{Path: "mc.yaml", Meta: mixin.Meta{Base: "alpine:3.20"}}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	text := df.String()

	for _, want := range []string{
		"RUN groupadd --gid 1000 dev",
		"RUN useradd --gid 1000 --uid 1000 --home /home/dev dev",
		"RUN mkdir -p /home/dev",
		"RUN chown 1000:1000 /home/dev",
		"USER 1000:1000",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q:\n%s", want, text)
		}
	}
}

func TestConvertScriptsInMergeOrder(t *testing.T) {
	root := &mixin.Node{
		Path:   "a.yaml",
		Meta:   mixin.Meta{Base: "alpine"},
		Script: "echo root",
		Children: []*mixin.Node{
			{Path: "b.yaml", Script: "echo b"},
			{Path: "c.yaml", Script: "echo c"},
		},
	}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	text := df.String()

	b := strings.Index(text, "Exec script from: b.yaml")
	c := strings.Index(text, "Exec script from: c.yaml")
	a := strings.Index(text, "Exec script from: a.yaml")
	if b < 0 || c < 0 || a < 0 {
		t.Fatalf("missing script blocks:\n%s", text)
	}
	if !(b < c && c < a) {
		t.Fatalf("script order = b@%d c@%d a@%d, want b < c < a (root last)", b, c, a)
	}
}

func TestConvertRuntimeParameterAccumulation(t *testing.T) {
	p := mixin.Publish{HostPort: 8080, MachinePort: 80}
	root := &mixin.Node{
		Path: "a.yaml",
		Meta: mixin.Meta{
			Base:    "alpine",
			Publish: []mixin.Publish{p},
			Env:     map[string]string{"A": "1"},
		},
		Children: []*mixin.Node{
			{Path: "b.yaml", Meta: mixin.Meta{Publish: []mixin.Publish{p}}},
		},
	}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// Duplicate publishes are kept; they map 1:1 to forwarded flags.
	if got := len(df.Publishes()); got != 2 {
		t.Fatalf("publishes = %d, want 2", got)
	}
	if got := len(df.Envs()); got != 1 {
		t.Fatalf("envs = %d, want 1", got)
	}
}

func TestConvertContextDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, ".mc", "dev")
	for _, sub := range []string{"tools", "assets", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(nested, sub), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(nested, "note.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := &mixin.Node{
		Path: filepath.Join(nested, "dev.yaml"),
		Meta: mixin.Meta{Base: "alpine"},
	}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	text := df.String()

	if !strings.Contains(text, "# Adding context dirs") {
		t.Fatalf("missing context dirs comment:\n%s", text)
	}
	for _, want := range []string{
		"COPY " + filepath.Join(nested, "assets") + " /assets",
		"COPY " + filepath.Join(nested, "tools") + " /tools",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, ".hidden") {
		t.Fatalf("hidden directory copied:\n%s", text)
	}
	if strings.Contains(text, "note.txt") {
		t.Fatalf("plain file copied:\n%s", text)
	}
}

func TestConvertShallowRootSkipsContextDirs(t *testing.T) {
	root := &mixin.Node{Path: "mc.yaml", Meta: mixin.Meta{Base: "alpine"}}

	df, err := Convert(root, testIdentity)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if strings.Contains(df.String(), "Adding context dirs") {
		t.Fatalf("shallow root produced context copies:\n%s", df.String())
	}
}

func TestSegmentCount(t *testing.T) {
	tests := []struct {
		dir  string
		want int
	}{
		{".", 0},
		{"a", 1},
		{filepath.Join(".mc", "dev"), 2},
		{"/", 1},
		{"/home", 2},
		{"/home/dev", 3},
	}

	for _, tt := range tests {
		if got := segmentCount(tt.dir); got != tt.want {
			t.Fatalf("segmentCount(%q) = %d, want %d", tt.dir, got, tt.want)
		}
	}
}
