package mixin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMetadataAndScript(t *testing.T) {
	input := "---\nbase: ubuntu:22.04\ninstall:\n  - curl\n  - git\nmixin: []\n---\necho hello\n"

	node, err := parse("test.yaml", input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if node.Path != "test.yaml" {
		t.Fatalf("path = %q, want test.yaml", node.Path)
	}
	if node.Meta.Base != "ubuntu:22.04" {
		t.Fatalf("base = %q, want ubuntu:22.04", node.Meta.Base)
	}
	if diff := cmp.Diff([]string{"curl", "git"}, node.Meta.Install); diff != "" {
		t.Fatalf("install mismatch (-want +got):\n%s", diff)
	}
	if node.Script != "echo hello" {
		t.Fatalf("script = %q, want echo hello", node.Script)
	}
}

func TestParseMetadataNoScript(t *testing.T) {
	node, err := parse("test.yaml", "---\nbase: alpine:3.20\n---\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if node.Meta.Base != "alpine:3.20" {
		t.Fatalf("base = %q, want alpine:3.20", node.Meta.Base)
	}
	if node.Script != "" {
		t.Fatalf("script = %q, want empty", node.Script)
	}
}

func TestParseNoMetadataAllScript(t *testing.T) {
	node, err := parse("script.yaml", "echo one\necho two\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if node.Meta.Base != "" || node.Meta.Install != nil {
		t.Fatalf("meta = %+v, want zero value", node.Meta)
	}
	if node.Script != "echo one\necho two" {
		t.Fatalf("script = %q, want both lines", node.Script)
	}
}

func TestParseMissingClosingDelimiter(t *testing.T) {
	_, err := parse("bad.yaml", "---\nbase: ubuntu\necho hi\n")
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("err = %v, want ErrUnterminated", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	_, err := parse("empty.yaml", "")
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err = %v, want ErrEmptyFile", err)
	}
}

func TestParseInvalidMetadata(t *testing.T) {
	_, err := parse("bad.yaml", "---\nbase: [unclosed\n---\n")
	if !errors.Is(err, ErrMetadata) {
		t.Fatalf("err = %v, want ErrMetadata", err)
	}
}

func TestParseCRLFNormalization(t *testing.T) {
	node, err := parse("crlf.yaml", "---\r\nbase: alpine\r\n---\r\necho hi\r\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if node.Meta.Base != "alpine" {
		t.Fatalf("base = %q, want alpine", node.Meta.Base)
	}
	if node.Script != "echo hi" {
		t.Fatalf("script = %q, want echo hi", node.Script)
	}
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	node, err := parse("extra.yaml", "---\nbase: fedora\nworkdir: /app\nnot_a_field: 42\n---\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if node.Meta.Base != "fedora" {
		t.Fatalf("base = %q, want fedora", node.Meta.Base)
	}
}

func TestParseStructuredFields(t *testing.T) {
	input := "---\npublish:\n  - 127.0.0.1:8080:80\nvolume:\n  - /opt/data:/data:ro\nenv:\n  A: B\n---\n"

	node, err := parse("full.yaml", input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	wantPublish := []Publish{{HostIP: "127.0.0.1", HostPort: 8080, MachinePort: 80}}
	if diff := cmp.Diff(wantPublish, node.Meta.Publish); diff != "" {
		t.Fatalf("publish mismatch (-want +got):\n%s", diff)
	}

	wantVolume := []Volume{{HostPath: "/opt/data", MachinePath: "/data", Options: []string{"ro"}}}
	if diff := cmp.Diff(wantVolume, node.Meta.Volume); diff != "" {
		t.Fatalf("volume mismatch (-want +got):\n%s", diff)
	}

	if node.Meta.Env["A"] != "B" {
		t.Fatalf("env[A] = %q, want B", node.Meta.Env["A"])
	}
}

func TestParseInvalidPublishInMetadata(t *testing.T) {
	_, err := parse("bad.yaml", "---\npublish:\n  - not-a-port\n---\n")
	if !errors.Is(err, ErrMetadata) {
		t.Fatalf("err = %v, want ErrMetadata", err)
	}
}
