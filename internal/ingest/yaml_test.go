package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFrames = `
frames:
  - name: deploys
    fields:
      - {name: service, role: text, values: [api, web]}
      - {name: at, role: start, values: ["2023-02-01 10:00", 1675418400000]}
      - {name: finished, role: end, values: ["2023-02-01 11:00", null]}
      - {name: env, role: label, values: [prod, ""]}
      - {name: owner, role: description, values: [ana, bo]}
      - {name: runbook, role: link, values: ["https://example.com/api", ""]}
  - fields:
      - {name: title, role: text, values: [holiday]}
      - {name: day, role: start, values: [2023-02-14]}
`

func TestParseYAML(t *testing.T) {
	frames, err := ParseYAML(strings.NewReader(testFrames), "ops")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}

	deploys := frames[0]
	if deploys.Name != "deploys" || deploys.Rows() != 2 {
		t.Errorf("unexpected frame %q with %d rows", deploys.Name, deploys.Rows())
	}
	if got, ok := deploys.Start.Value(1).(int); !ok || got != 1675418400000 {
		t.Errorf("epoch start = %#v", deploys.Start.Value(1))
	}
	if deploys.End.Value(1) != nil {
		t.Errorf("expected null end, got %#v", deploys.End.Value(1))
	}
	if len(deploys.Labels) != 1 || len(deploys.Description) != 1 {
		t.Errorf("labels=%d description=%d", len(deploys.Labels), len(deploys.Description))
	}
	if links := deploys.Text.RowLinks(0); len(links) != 1 || links[0].Title != "runbook" {
		t.Errorf("links = %+v", links)
	}
	if links := deploys.Text.RowLinks(1); links != nil {
		t.Errorf("expected no link on row 1, got %+v", links)
	}

	if frames[1].Name != "ops-2" {
		t.Errorf("default name = %q, want ops-2", frames[1].Name)
	}
}

func TestParseYAML_UnknownRole(t *testing.T) {
	doc := "frames:\n  - fields:\n      - {name: x, role: weight, values: [1]}\n"
	_, err := ParseYAML(strings.NewReader(doc), "bad")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("got %v, want %v", err, ErrUnknownRole)
	}
}

func TestParseYAML_Empty(t *testing.T) {
	frames, err := ParseYAML(strings.NewReader(""), "empty")
	if err != nil || len(frames) != 0 {
		t.Errorf("got %v, %v", frames, err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	if err := os.WriteFile(path, []byte(testFrames), 0o644); err != nil {
		t.Fatalf("failed to write frames: %v", err)
	}
	frames, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 || frames[1].Name != "ops-2" {
		t.Errorf("unexpected frames %+v", frames)
	}
}
