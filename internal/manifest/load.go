package manifest

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Load reads and compiles a manifest file. A missing file is the fatal
// missing-module condition: there is nothing to select from, so the error
// propagates to the caller unchanged.
func Load(path string) (*metadata.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("module manifest not found: %s", path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return Compile(v)
}

// CompileString compiles an inline manifest. Used by the scenario harness
// and tests; file-backed loading goes through Load.
func CompileString(src string) (*metadata.Module, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return Compile(v)
}
