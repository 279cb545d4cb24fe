package schema

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// Load reads a YAML workflow document, compiles it and validates the result.
func Load(r io.Reader) (domain.Definition, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("reading workflow document: %w", err)
	}
	return Parse(raw)
}

// Parse compiles a YAML workflow document into a validated Definition.
func Parse(data []byte) (domain.Definition, error) {
	var doc WorkflowDoc
	if err := decodeDoc(data, &doc); err != nil {
		return domain.Definition{}, err
	}

	def, err := Compile(doc)
	if err != nil {
		return domain.Definition{}, err
	}
	if err := ValidateDefinition(def); err != nil {
		return domain.Definition{}, err
	}
	return def, nil
}

// decodeDoc goes through a generic map so mapstructure can enforce the
// document shape and reject unknown keys (catching YAML typos early).
func decodeDoc(data []byte, doc *WorkflowDoc) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing workflow document: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      doc,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("building document decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decoding workflow document: %w", err)
	}
	return nil
}

// Compile turns the file-facing document into the domain model. The wildcard
// sentinel becomes the tagged Source variant here; it does not survive past
// this boundary.
func Compile(doc WorkflowDoc) (domain.Definition, error) {
	def := domain.Definition{
		Name:    doc.Name,
		Initial: domain.State(doc.Initial),
		Events:  doc.Events,
	}
	for _, s := range doc.States {
		def.States = append(def.States, domain.State(s))
	}

	for _, td := range doc.Transitions {
		source, err := compileSource(td.Source)
		if err != nil {
			return domain.Definition{}, fmt.Errorf("transition %q: %w", td.Name, err)
		}
		def.Transitions = append(def.Transitions, domain.Transition{
			Name:        td.Name,
			Source:      source,
			Destination: domain.State(td.Destination),
			DateField:   td.DateField,
			Label:       td.Label,
		})
	}
	return def, nil
}

func compileSource(v any) (domain.Source, error) {
	switch src := v.(type) {
	case string:
		if src == Wildcard {
			return domain.FromAny(), nil
		}
		return domain.From(domain.State(src)), nil
	case []string:
		states := make([]domain.State, len(src))
		for i, s := range src {
			states[i] = domain.State(s)
		}
		return domain.From(states...), nil
	case []any:
		states := make([]domain.State, 0, len(src))
		for _, item := range src {
			s, ok := item.(string)
			if !ok {
				return domain.Source{}, fmt.Errorf("source list contains %T, want string", item)
			}
			if s == Wildcard {
				return domain.Source{}, fmt.Errorf("wildcard source %q cannot be part of a list", Wildcard)
			}
			states = append(states, domain.State(s))
		}
		return domain.From(states...), nil
	case nil:
		return domain.Source{}, fmt.Errorf("source is required")
	default:
		return domain.Source{}, fmt.Errorf("source has unsupported type %T", v)
	}
}
