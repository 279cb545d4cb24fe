package ratchet

import (
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

// Factory holds a validated definition plus a base set of options and stamps
// out one Workflow per subject. Use it when the same workflow type drives
// many subjects (HTTP handlers, job consumers): the definition is validated
// once, at factory construction.
type Factory struct {
	def  domain.Definition
	opts []Option
}

// NewFactory validates def and returns a factory for it.
func NewFactory(def domain.Definition, opts ...Option) (*Factory, error) {
	if err := schema.ValidateDefinition(def); err != nil {
		return nil, err
	}
	return &Factory{def: def, opts: opts}, nil
}

// Definition returns the factory's workflow definition.
func (f *Factory) Definition() domain.Definition {
	return f.def
}

// Bind builds a Workflow for subject. Extra options are applied after the
// factory's base options, so per-subject hooks can close over the subject.
func (f *Factory) Bind(subject ports.Subject, extra ...Option) *Workflow {
	opts := make([]Option, 0, len(f.opts)+len(extra))
	opts = append(opts, f.opts...)
	opts = append(opts, extra...)
	return newWorkflow(subject, f.def, opts)
}
