package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// RunWithGolden executes a scenario and compares the merged module's
// canonical JSON against a golden file in testdata/golden/{Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	res, err := Run(sc)
	if err != nil {
		return err
	}

	snapshot, err := metadata.MarshalCanonical(metadata.Snapshot(res.Merged))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, snapshot)
	return nil
}
