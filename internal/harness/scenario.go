package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/implicitlycorrect/graft/internal/cloner"
	"github.com/implicitlycorrect/graft/internal/manifest"
	"github.com/implicitlycorrect/graft/internal/merger"
	"github.com/implicitlycorrect/graft/internal/metadata"
	"github.com/implicitlycorrect/graft/internal/selector"
)

// Scenario defines a conformance test scenario for the graft pipeline.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Source is the inline CUE manifest of the module to select from.
	Source string `yaml:"source"`

	// Target is the inline CUE manifest of the module to merge into.
	Target string `yaml:"target"`

	// Strict enables strict merging (fail on unresolvable member kinds).
	Strict bool `yaml:"strict,omitempty"`

	// ExpectTypes lists the full names expected in the selection's
	// pending type set, in order.
	ExpectTypes []string `yaml:"expect_types,omitempty"`

	// ExpectMembers lists the individually selected members, in order,
	// as "kind declaring.name" (or "kind name" for ownerless members).
	ExpectMembers []string `yaml:"expect_members,omitempty"`
}

// Result captures one scenario execution.
type Result struct {
	SelectedTypes   []string
	SelectedMembers []string
	Merged          *metadata.Module
}

// LoadScenario reads a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &sc, nil
}

// Run executes the full pipeline for a scenario and verifies the
// selection against the scenario's expectations.
func Run(sc *Scenario) (*Result, error) {
	source, err := manifest.CompileString(sc.Source)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: compiling source: %w", sc.Name, err)
	}
	target, err := manifest.CompileString(sc.Target)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: compiling target: %w", sc.Name, err)
	}

	builder := cloner.NewBuilder()
	types, err := selector.New(nil).Select(source, builder)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: select: %w", sc.Name, err)
	}

	res := &Result{}
	for _, t := range types {
		res.SelectedTypes = append(res.SelectedTypes, t.FullName())
	}
	for _, m := range builder.PendingMembers() {
		res.SelectedMembers = append(res.SelectedMembers, memberKey(m))
	}

	if err := checkExpectations(sc, res); err != nil {
		return nil, err
	}

	cloneRes, err := builder.Clone()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: clone: %w", sc.Name, err)
	}
	if err := merger.New(sc.Strict, nil).Merge(cloneRes, target); err != nil {
		return nil, fmt.Errorf("scenario %s: merge: %w", sc.Name, err)
	}

	res.Merged = target
	return res, nil
}

// memberKey renders a member as "kind declaring.name", matching the
// scenario expectation format.
func memberKey(m metadata.Member) string {
	kind := metadata.KindOf(m)
	if d := m.Declaring(); d != nil && d.Name != metadata.GlobalTypeName {
		return fmt.Sprintf("%s %s.%s", kind, d.FullName(), m.MemberName())
	}
	return fmt.Sprintf("%s %s", kind, m.MemberName())
}

func checkExpectations(sc *Scenario, res *Result) error {
	if sc.ExpectTypes != nil {
		if err := sameStrings(sc.ExpectTypes, res.SelectedTypes); err != nil {
			return fmt.Errorf("scenario %s: selected types: %w", sc.Name, err)
		}
	}
	if sc.ExpectMembers != nil {
		if err := sameStrings(sc.ExpectMembers, res.SelectedMembers); err != nil {
			return fmt.Errorf("scenario %s: selected members: %w", sc.Name, err)
		}
	}
	return nil
}

func sameStrings(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("want %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("at %d: want %q, got %q", i, want[i], got[i])
		}
	}
	return nil
}
