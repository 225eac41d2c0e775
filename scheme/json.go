package scheme

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keybind/key"
)

// ParseJSON parses a scheme document. Structural problems fail here;
// descriptor content is not checked, so Validate and Apply can still
// report or skip individual bindings later.
func ParseJSON(data []byte) (*Scheme, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidScheme)
	}

	s := &Scheme{
		Name:        root.Get("name").String(),
		Description: root.Get("description").String(),
	}
	if p := root.Get("platform").String(); p != "" {
		s.Platform = key.ParsePlatform(p)
	}

	if bindings := root.Get("bindings"); bindings.Exists() {
		if !bindings.IsArray() {
			return nil, fmt.Errorf("%w: bindings must be an array", ErrInvalidScheme)
		}
		for i, item := range bindings.Array() {
			b, err := parseBinding(item)
			if err != nil {
				return nil, fmt.Errorf("binding %d: %w", i, err)
			}
			s.Bindings = append(s.Bindings, b)
		}
	}

	if sequences := root.Get("sequences"); sequences.Exists() {
		if !sequences.IsArray() {
			return nil, fmt.Errorf("%w: sequences must be an array", ErrInvalidScheme)
		}
		for i, item := range sequences.Array() {
			sb, err := parseSequenceBinding(item)
			if err != nil {
				return nil, fmt.Errorf("sequence %d: %w", i, err)
			}
			s.Sequences = append(s.Sequences, sb)
		}
	}

	return s, nil
}

func parseBinding(item gjson.Result) (Binding, error) {
	if !item.IsObject() {
		return Binding{}, fmt.Errorf("%w: binding must be an object", ErrInvalidScheme)
	}

	b := Binding{
		Keys:            item.Get("keys").String(),
		Action:          item.Get("action").String(),
		Description:     item.Get("description").String(),
		Enabled:         true,
		RequireReset:    item.Get("require_reset").Bool(),
		PreventDefault:  item.Get("prevent_default").Bool(),
		StopPropagation: item.Get("stop_propagation").Bool(),
		OnRelease:       item.Get("on_release").Bool(),
	}
	if b.Keys == "" {
		return Binding{}, fmt.Errorf("%w: binding needs keys", ErrInvalidScheme)
	}
	if b.Action == "" {
		return Binding{}, fmt.Errorf("%w: binding needs an action", ErrInvalidScheme)
	}
	if enabled := item.Get("enabled"); enabled.Exists() {
		b.Enabled = enabled.Bool()
	}
	return b, nil
}

func parseSequenceBinding(item gjson.Result) (SequenceBinding, error) {
	if !item.IsObject() {
		return SequenceBinding{}, fmt.Errorf("%w: sequence must be an object", ErrInvalidScheme)
	}

	steps := item.Get("steps")
	if !steps.IsArray() {
		return SequenceBinding{}, fmt.Errorf("%w: sequence needs a steps array", ErrInvalidScheme)
	}
	sb := SequenceBinding{
		Action:      item.Get("action").String(),
		Description: item.Get("description").String(),
		TimeoutMS:   int(item.Get("timeout_ms").Int()),
	}
	for _, step := range steps.Array() {
		sb.Steps = append(sb.Steps, step.String())
	}
	if len(sb.Steps) == 0 {
		return SequenceBinding{}, fmt.Errorf("%w: sequence needs at least one step", ErrInvalidScheme)
	}
	if sb.Action == "" {
		return SequenceBinding{}, fmt.Errorf("%w: sequence needs an action", ErrInvalidScheme)
	}
	return sb, nil
}

// LoadFile loads a scheme from a JSON file.
func LoadFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheme file: %w", err)
	}
	s, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// bindingJSON is the serialized binding shape. Flags at their defaults are
// omitted so saved files stay close to what a person would write.
type bindingJSON struct {
	Keys            string `json:"keys"`
	Action          string `json:"action"`
	Description     string `json:"description,omitempty"`
	Enabled         *bool  `json:"enabled,omitempty"`
	RequireReset    bool   `json:"require_reset,omitempty"`
	PreventDefault  bool   `json:"prevent_default,omitempty"`
	StopPropagation bool   `json:"stop_propagation,omitempty"`
	OnRelease       bool   `json:"on_release,omitempty"`
}

type sequenceJSON struct {
	Steps       []string `json:"steps"`
	Action      string   `json:"action"`
	Description string   `json:"description,omitempty"`
	TimeoutMS   int      `json:"timeout_ms,omitempty"`
}

// EncodeJSON serializes the scheme with stable field order, formatted for
// hand editing.
func (s *Scheme) EncodeJSON() ([]byte, error) {
	out := ""
	out, _ = sjson.Set(out, "name", s.Name)
	if s.Description != "" {
		out, _ = sjson.Set(out, "description", s.Description)
	}
	if s.Platform != "" {
		out, _ = sjson.Set(out, "platform", string(s.Platform))
	}

	bindings := make([]bindingJSON, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		bj := bindingJSON{
			Keys:            b.Keys,
			Action:          b.Action,
			Description:     b.Description,
			RequireReset:    b.RequireReset,
			PreventDefault:  b.PreventDefault,
			StopPropagation: b.StopPropagation,
			OnRelease:       b.OnRelease,
		}
		if !b.Enabled {
			disabled := false
			bj.Enabled = &disabled
		}
		bindings = append(bindings, bj)
	}
	out, err := sjson.Set(out, "bindings", bindings)
	if err != nil {
		return nil, fmt.Errorf("encoding bindings: %w", err)
	}

	sequences := make([]sequenceJSON, 0, len(s.Sequences))
	for _, sb := range s.Sequences {
		sequences = append(sequences, sequenceJSON{
			Steps:       sb.Steps,
			Action:      sb.Action,
			Description: sb.Description,
			TimeoutMS:   sb.TimeoutMS,
		})
	}
	out, err = sjson.Set(out, "sequences", sequences)
	if err != nil {
		return nil, fmt.Errorf("encoding sequences: %w", err)
	}

	return pretty.Pretty([]byte(out)), nil
}

// SaveFile writes the scheme to a JSON file.
func (s *Scheme) SaveFile(path string) error {
	data, err := s.EncodeJSON()
	if err != nil {
		return fmt.Errorf("encoding scheme: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scheme file: %w", err)
	}
	return nil
}
