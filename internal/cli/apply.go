package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/implicitlycorrect/graft/internal/cloner"
	"github.com/implicitlycorrect/graft/internal/ledger"
	"github.com/implicitlycorrect/graft/internal/manifest"
	"github.com/implicitlycorrect/graft/internal/merger"
	"github.com/implicitlycorrect/graft/internal/metadata"
	"github.com/implicitlycorrect/graft/internal/selector"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Source string // source manifest path
	Target string // target manifest path
	Output string // merged module output path (.json or .yaml)
	Ledger string // optional ledger database path
	Strict bool   // fail on unresolvable member kinds
}

// ApplyResult summarizes a completed graft.
type ApplyResult struct {
	Source        string `json:"source"`
	Target        string `json:"target"`
	TypesAdded    int    `json:"types_added"`
	MembersAdded  int    `json:"members_added"` // ownerless members routed to the global type
	SelectionHash string `json:"selection_hash"`
	OperationID   string `json:"operation_id,omitempty"`
	OutputPath    string `json:"output_path,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply --source <manifest.cue> --target <manifest.cue>",
		Short: "Select, clone, and merge marked members into a target module",
		Long: `Run the full graft pipeline: load both modules, select marked types and
members from the source, deep-clone the selection, and merge the clones
into the target. Ownerless cloned members land in the target's
global-members type.

Apply is a one-shot append: running the same apply against the same
target output twice duplicates entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "source module manifest (required)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target module manifest (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the merged module to a .json or .yaml file")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the operation in a ledger database")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on members with unresolvable kinds instead of skipping them")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runApply(opts *ApplyOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	source, err := manifest.Load(opts.Source)
	if err != nil {
		return applyError(formatter, ErrCodeCompile, err)
	}
	target, err := manifest.Load(opts.Target)
	if err != nil {
		return applyError(formatter, ErrCodeCompile, err)
	}
	logger.Debug("loaded modules", "source", source.Name, "target", target.Name)

	builder := cloner.NewBuilder()
	types, err := selector.New(nil).Select(source, builder)
	if err != nil {
		return applyError(formatter, ErrCodeSelect, err)
	}
	members := builder.PendingMembers()
	logger.Debug("selection complete", "types", len(types), "members", len(members))

	selectionHash, err := metadata.SelectionHash(types, members)
	if err != nil {
		return applyError(formatter, ErrCodeGeneric, err)
	}

	result, err := builder.Clone()
	if err != nil {
		return applyError(formatter, ErrCodeGeneric, err)
	}

	if err := merger.New(opts.Strict, logger).Merge(result, target); err != nil {
		if ferr := formatter.Error(ErrCodeMerge, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, err.Error())
	}

	membersAdded := 0
	for _, m := range result.Members {
		if d := m.Declaring(); d != nil && d.Name == metadata.GlobalTypeName {
			membersAdded++
		}
	}

	summary := &ApplyResult{
		Source:        source.Name,
		Target:        target.Name,
		TypesAdded:    len(result.Types),
		MembersAdded:  membersAdded,
		SelectionHash: selectionHash,
	}

	if opts.Output != "" {
		if err := writeModule(target, opts.Output); err != nil {
			return applyError(formatter, ErrCodeWriteFailed, err)
		}
		summary.OutputPath = opts.Output
	}

	if opts.Ledger != "" {
		opID, err := recordOperation(cmd, opts.Ledger, summary)
		if err != nil {
			return applyError(formatter, ErrCodeLedger, err)
		}
		summary.OperationID = opID
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "Grafted %q into %q: %d type(s), %d global member(s)\n",
		summary.Source, summary.Target, summary.TypesAdded, summary.MembersAdded)
	if summary.OutputPath != "" {
		fmt.Fprintf(formatter.Writer, "merged module written to %s\n", summary.OutputPath)
	}
	return nil
}

func applyError(formatter *OutputFormatter, code string, err error) error {
	if ferr := formatter.Error(code, err.Error(), nil); ferr != nil {
		return ferr
	}
	return NewExitError(ExitCommandError, err.Error())
}

// writeModule encodes the merged module by output extension: .yaml/.yml
// via YAML, anything else as indented JSON.
func writeModule(mod *metadata.Module, path string) error {
	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(mod)
	default:
		data, err = json.MarshalIndent(mod, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding merged module: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing merged module: %w", err)
	}
	return nil
}

func recordOperation(cmd *cobra.Command, path string, summary *ApplyResult) (string, error) {
	l, err := ledger.Open(path)
	if err != nil {
		return "", err
	}
	defer l.Close()

	op := ledger.NewOperation(summary.Source, summary.Target,
		summary.TypesAdded, summary.MembersAdded, summary.SelectionHash)
	if err := l.WriteOperation(cmd.Context(), op); err != nil {
		return "", err
	}
	return op.ID, nil
}
