// Package plan loads and runs declarative YAML run plans. A plan is an
// ordered list of operations with keyword arguments, for operators who want
// repeatable provisioning without writing a script.
package plan

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// Plan is a named sequence of operations to run against one account.
type Plan struct {
	// Name identifies the plan in logs and reports.
	Name string `yaml:"name"`

	// Description explains what the plan provisions.
	Description string `yaml:"description,omitempty"`

	// Steps are executed in order. A step whose call fails or is
	// suppressed by the existence guard does not stop the plan; the
	// outcome lands in the run log either way.
	Steps []Step `yaml:"steps"`
}

// Step is one operation invocation.
type Step struct {
	// Op is the catalog operation name (e.g. "create_mailbox").
	Op string `yaml:"op"`

	// Args contains the operation's keyword arguments.
	Args map[string]any `yaml:"args,omitempty"`
}

// Load reads and parses a plan file. Unknown YAML fields are rejected so a
// typo like "arg:" for "args:" fails loudly instead of silently dropping
// arguments.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes plan YAML with strict field validation.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

func validate(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range p.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
	}
	return nil
}

// Validate pre-checks every step against the catalog without dispatching
// anything, so a malformed plan is rejected before the first provider call.
func (p *Plan) Validate(catalog *schema.Catalog) error {
	for i, step := range p.Steps {
		if _, err := catalog.Normalize(step.Op, step.Args); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

// Run executes the plan's steps in order through one shared batch, so
// guarded steps against the same inventory reuse a single snapshot.
//
// Call failures and guard skips are recorded and do not stop the run.
// Schema errors and context cancellation do.
func (p *Plan) Run(ctx context.Context, s *session.Session) error {
	if err := p.Validate(s.Catalog()); err != nil {
		return err
	}

	b := s.Batch()
	for i, step := range p.Steps {
		if _, err := b.Call(ctx, step.Op, step.Args); err != nil {
			if schema.IsSchemaError(err) || ctx.Err() != nil {
				return fmt.Errorf("steps[%d] %s: %w", i, step.Op, err)
			}
		}
	}
	return nil
}
