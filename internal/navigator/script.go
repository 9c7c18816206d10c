package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/spherenav/internal/navigation"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// Script step actions beyond the state machine's own action names.
const (
	StepNavigate      = "navigate"
	StepOpenLink      = "open_link"
	StepToggleOverlay = "toggle_overlay"
)

// Script is a replayable list of navigation steps, e.g.
//
//	steps:
//	  - action: to_domain
//	    domain: business
//	  - action: navigate
//	    path: /domain/business/tasks
//	  - action: go_back
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted request.
type Step struct {
	Action  string           `yaml:"action"`
	Domain  sphere.DomainID  `yaml:"domain,omitempty"`
	Section sphere.SectionID `yaml:"section,omitempty"`
	Path    string           `yaml:"path,omitempty"`
	Link    string           `yaml:"link,omitempty"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index int
	Step  Step
	OK    bool
	Err   error
	Path  string
	State navigation.State
}

// ParseScript decodes a YAML script. Unknown keys and actions are errors.
func ParseScript(r io.Reader) (Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, nil
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	for i, step := range s.Steps {
		switch step.Action {
		case StepNavigate, StepOpenLink, StepToggleOverlay:
			continue
		}
		if _, err := navigation.ParseAction(step.Action, step.Domain, step.Section); err != nil {
			return Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Run applies every step in order and reports each outcome. A step that is
// refused does not stop the script.
func (n *Navigator) Run(ctx context.Context, s Script) []StepResult {
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			results = append(results, StepResult{Index: i, Step: step, Err: err})
			break
		}
		ok, err := n.runStep(ctx, step)
		results = append(results, StepResult{
			Index: i,
			Step:  step,
			OK:    ok,
			Err:   err,
			Path:  n.CurrentPath(),
			State: n.State(),
		})
	}
	return results
}

func (n *Navigator) runStep(ctx context.Context, step Step) (bool, error) {
	switch step.Action {
	case StepNavigate:
		return n.NavigateToPath(ctx, step.Path), nil
	case StepOpenLink:
		return n.OpenLink(ctx, step.Link), nil
	case StepToggleOverlay:
		return n.ToggleOverlay(ctx), nil
	}

	a, err := navigation.ParseAction(step.Action, step.Domain, step.Section)
	if err != nil {
		return false, err
	}
	tr, err := n.Dispatch(ctx, a)
	if err != nil {
		return false, err
	}
	return !tr.Noop, nil
}
