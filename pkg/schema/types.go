package schema

// WorkflowDoc is the raw, file-facing shape of a workflow definition. It uses
// "mapstructure" tags so the same struct decodes from YAML documents and from
// generic map payloads. The wildcard source survives here as the literal "*";
// it is turned into the tagged domain variant when the document is compiled.
type WorkflowDoc struct {
	Name        string            `json:"name" mapstructure:"name"`
	Initial     string            `json:"initial,omitempty" mapstructure:"initial"`
	States      []string          `json:"states" mapstructure:"states"`
	Transitions []TransitionDoc   `json:"transitions" mapstructure:"transitions"`
	Events      map[string]string `json:"events,omitempty" mapstructure:"events"`
}

// TransitionDoc is one transition descriptor. Source accepts a single state,
// a list of states, or the wildcard "*".
type TransitionDoc struct {
	Name        string `json:"name" mapstructure:"name"`
	Source      any    `json:"source" mapstructure:"source"`
	Destination string `json:"destination" mapstructure:"destination"`
	DateField   string `json:"date_field,omitempty" mapstructure:"date_field"`
	Label       string `json:"label,omitempty" mapstructure:"label"`
}

// Wildcard is the file-level marker matching any source state.
const Wildcard = "*"
