package merger

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/implicitlycorrect/graft/internal/cloner"
	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Merger integrates clone results into target modules. The zero value
// merges silently in permissive mode; construct with New to attach a
// logger or enable strict mode.
type Merger struct {
	// Strict makes an unresolvable member kind a fatal error instead of
	// a logged skip.
	Strict bool

	logger *log.Logger
}

// New creates a Merger. A nil logger discards diagnostics.
func New(strict bool, logger *log.Logger) *Merger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Merger{Strict: strict, logger: logger}
}

// Merge appends res into target: cloned types first, then detached
// members into the global-members container, both in clone-result order.
// Members owned by one of the cloned types are skipped (reachable through
// the type placed in step one). Everything else is routed, regardless of
// what its owner pointer says: routing claims ownership, so after a merge
// the owner reflects the merge itself. Skipping on a bare non-nil owner
// would make a re-merge silently drop members the first merge already
// placed, turning the one-shot append into a set union.
//
// A member that resolves to no concrete kind is logged and skipped in
// permissive mode, or aborts the merge with *UnknownKindError in strict
// mode. Applied steps are not rolled back either way.
func (mg *Merger) Merge(res *cloner.CloneResult, target *metadata.Module) error {
	logger := mg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cloned := make(map[*metadata.TypeDef]struct{}, len(res.Types))
	for _, t := range res.Types {
		target.AddType(t)
		cloned[t] = struct{}{}
	}

	globals := target.GetOrCreateGlobalType()

	for i, m := range res.Members {
		if d := m.Declaring(); d != nil {
			if _, ok := cloned[d]; ok {
				continue
			}
		}
		switch member := m.(type) {
		case *metadata.Field:
			globals.AddField(member)
		case *metadata.Event:
			globals.AddEvent(member)
		case *metadata.Property:
			globals.AddProperty(member)
		case *metadata.Method:
			globals.AddMethod(member)
		default:
			if mg.Strict {
				return &UnknownKindError{Index: i, Name: m.MemberName()}
			}
			logger.Warn("dropping member with unresolvable kind",
				"index", i, "member", m.MemberName())
		}
	}

	return nil
}
