package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"yogaday/local-app/internal/model"
)

// flexID accepts an identifier written either as a number or as a numeric string.
type flexID int64

func parseFlexInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Trunc(f) != f {
		return 0, fmt.Errorf("invalid identifier %q", s)
	}
	return int64(f), nil
}

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("identifier is null")
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	n, err := parseFlexInt(s)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

func (f *flexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("identifier must be a scalar, line %d", value.Line)
	}
	n, err := parseFlexInt(value.Value)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

// flexDuration reads a duration in minutes; negative or unparsable values become 0.
type flexDuration int

func coerceDuration(s string) flexDuration {
	n, err := parseFlexInt(s)
	if err != nil || n < 0 || n > math.MaxInt32 {
		return 0
	}
	return flexDuration(n)
}

func (d *flexDuration) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	*d = coerceDuration(s)
	return nil
}

func (d *flexDuration) UnmarshalYAML(value *yaml.Node) error {
	*d = coerceDuration(value.Value)
	return nil
}

type asanaRecord struct {
	ID       flexID   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Note     string   `json:"note" yaml:"note"`
	ImageURL string   `json:"imageUrl" yaml:"imageUrl"`
	Tags     []string `json:"tags" yaml:"tags"`
}

func (r asanaRecord) toModel() model.Asana {
	return model.Asana{ID: int64(r.ID), Name: r.Name, Note: r.Note, ImageURL: r.ImageURL, Tags: r.Tags}
}

type flowRecord struct {
	ID          flexID       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Duration    flexDuration `json:"duration" yaml:"duration"`
	Tags        []string     `json:"tags" yaml:"tags"`
	AsanaIDs    []flexID     `json:"asanaIds" yaml:"asanaIds"`
}

func (r flowRecord) toModel() model.Flow {
	f := model.Flow{
		ID:          int64(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Duration:    int(r.Duration),
		Tags:        r.Tags,
		AsanaIDs:    make([]int64, 0, len(r.AsanaIDs)),
	}
	for _, id := range r.AsanaIDs {
		f.AsanaIDs = append(f.AsanaIDs, int64(id))
	}
	return f
}

type documentRecord struct {
	Asanas    []asanaRecord `json:"asanas" yaml:"asanas"`
	Flows     []flowRecord  `json:"flows" yaml:"flows"`
	AsanaTags []string      `json:"asanaTags" yaml:"asanaTags"`
	FlowTags  []string      `json:"flowTags" yaml:"flowTags"`
	Checksum  string        `json:"checksum" yaml:"checksum"`
}

func (r documentRecord) toModel() model.ExportDocument {
	doc := model.ExportDocument{
		Asanas:    make([]model.Asana, 0, len(r.Asanas)),
		Flows:     make([]model.Flow, 0, len(r.Flows)),
		AsanaTags: r.AsanaTags,
		FlowTags:  r.FlowTags,
		Checksum:  r.Checksum,
	}
	for _, a := range r.Asanas {
		doc.Asanas = append(doc.Asanas, a.toModel())
	}
	for _, f := range r.Flows {
		doc.Flows = append(doc.Flows, f.toModel())
	}
	return doc
}

func decodeAsanas(data []byte) ([]model.Asana, error) {
	var records []asanaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	asanas := make([]model.Asana, 0, len(records))
	for _, r := range records {
		asanas = append(asanas, r.toModel())
	}
	return NormalizeAsanas(asanas), nil
}

func decodeFlows(data []byte) ([]model.Flow, error) {
	var records []flowRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	flows := make([]model.Flow, 0, len(records))
	for _, r := range records {
		flows = append(flows, r.toModel())
	}
	return NormalizeFlows(flows), nil
}

func decodeTags(data []byte) ([]string, error) {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, err
	}
	return NormalizeTags(tags), nil
}

// NormalizeTags trims names, drops empty ones and collapses duplicates, keeping first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// NormalizeAsanas returns copies of the asanas with normalized tag sequences.
func NormalizeAsanas(asanas []model.Asana) []model.Asana {
	out := make([]model.Asana, 0, len(asanas))
	for _, a := range asanas {
		c := a.Clone()
		c.Tags = NormalizeTags(c.Tags)
		out = append(out, c)
	}
	return out
}

// NormalizeFlows returns copies of the flows with normalized tags, non-nil
// membership and a non-negative duration.
func NormalizeFlows(flows []model.Flow) []model.Flow {
	out := make([]model.Flow, 0, len(flows))
	for _, f := range flows {
		c := f.Clone()
		c.Tags = NormalizeTags(c.Tags)
		if c.Duration < 0 {
			c.Duration = 0
		}
		out = append(out, c)
	}
	return out
}

// NormalizeDocument normalizes every collection of an export document.
func NormalizeDocument(doc model.ExportDocument) model.ExportDocument {
	return model.ExportDocument{
		Asanas:    NormalizeAsanas(doc.Asanas),
		Flows:     NormalizeFlows(doc.Flows),
		AsanaTags: NormalizeTags(doc.AsanaTags),
		FlowTags:  NormalizeTags(doc.FlowTags),
		Checksum:  doc.Checksum,
	}
}
