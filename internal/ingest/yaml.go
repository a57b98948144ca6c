package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/calpanel/internal/frame"
)

// ErrUnknownRole is returned for a YAML field with an unsupported role.
var ErrUnknownRole = errors.New("unknown field role")

// Field roles accepted in YAML frame files.
const (
	RoleText        = "text"
	RoleStart       = "start"
	RoleEnd         = "end"
	RoleColor       = "color"
	RoleLocation    = "location"
	RoleDescription = "description"
	RoleLabel       = "label"
	RoleLink        = "link"
)

// yamlFile is a columnar frame document:
//
//	frames:
//	  - name: deploys
//	    fields:
//	      - {name: title, role: text, values: [api, web]}
//	      - {name: at, role: start, values: ["2023-02-01 10:00", 1675418400000]}
//	      - {name: runbook, role: link, values: ["https://example.com/api", ""]}
type yamlFile struct {
	Frames []yamlFrame `yaml:"frames"`
}

type yamlFrame struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Values []any  `yaml:"values"`
}

// LoadYAML reads a columnar YAML frame file. Frames without a name are
// named after the file and their position.
func LoadYAML(path string) ([]frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frame file: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseYAML(bytes.NewReader(data), base)
}

// ParseYAML decodes columnar frames. A link field attaches one link per
// row to the text field, titled with the field name.
func ParseYAML(r io.Reader, baseName string) ([]frame.Frame, error) {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing frame file: %w", err)
	}

	frames := make([]frame.Frame, 0, len(doc.Frames))
	for i, yf := range doc.Frames {
		name := yf.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", baseName, i+1)
		}
		f, err := buildFrame(name, yf.Fields)
		if err != nil {
			return nil, fmt.Errorf("frame %q: %w", name, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func buildFrame(name string, fields []yamlField) (frame.Frame, error) {
	f := frame.Frame{Name: name}
	var link *yamlField

	for i := range fields {
		yf := &fields[i]
		field := &frame.Field{Name: yf.Name, Values: yf.Values}
		switch strings.ToLower(strings.TrimSpace(yf.Role)) {
		case RoleText:
			f.Text = field
		case RoleStart:
			f.Start = field
		case RoleEnd:
			f.End = field
		case RoleColor:
			f.Color = field
		case RoleLocation:
			f.Location = field
		case RoleDescription:
			f.Description = append(f.Description, field)
		case RoleLabel, "labels":
			f.Labels = append(f.Labels, field)
		case RoleLink:
			link = yf
		default:
			return f, fmt.Errorf("%w: %q on field %q", ErrUnknownRole, yf.Role, yf.Name)
		}
	}

	if link != nil && f.Text != nil {
		links := make([][]frame.Link, len(link.Values))
		for row, raw := range link.Values {
			if href := frame.Stringify(raw); !frame.IsEmpty(href) {
				links[row] = []frame.Link{{Title: link.Name, Href: href}}
			}
		}
		f.Text.Links = frame.StaticLinks(links)
	}
	return f, nil
}
