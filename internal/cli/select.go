package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/implicitlycorrect/graft/internal/cloner"
	"github.com/implicitlycorrect/graft/internal/manifest"
	"github.com/implicitlycorrect/graft/internal/metadata"
	"github.com/implicitlycorrect/graft/internal/selector"
)

// SelectionReport is the dry-run output of the select command.
type SelectionReport struct {
	Module        string         `json:"module"`
	Types         []string       `json:"types,omitempty"`
	Members       []MemberReport `json:"members,omitempty"`
	SelectionHash string         `json:"selection_hash"`
}

// MemberReport describes one individually selected member.
type MemberReport struct {
	Kind      string `json:"kind"`
	Declaring string `json:"declaring,omitempty"`
	Name      string `json:"name"`
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <manifest.cue>",
		Short: "Show what the markers would select, without cloning",
		Long: `Walk a source module's type graph and report the selection the markers
produce: types slated for wholesale cloning and members slated for
individual cloning. Nothing is cloned or merged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSelect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	mod, err := manifest.Load(path)
	if err != nil {
		if ferr := formatter.Error(ErrCodeCompile, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	builder := cloner.NewBuilder()
	types, err := selector.New(nil).Select(mod, builder)
	if err != nil {
		if ferr := formatter.Error(ErrCodeSelect, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}
	members := builder.PendingMembers()

	report, err := buildSelectionReport(mod.Name, types, members)
	if err != nil {
		if ferr := formatter.Error(ErrCodeGeneric, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Module %q selects %d type(s), %d member(s)\n",
		report.Module, len(report.Types), len(report.Members))
	for _, t := range report.Types {
		fmt.Fprintf(formatter.Writer, "  type   %s\n", t)
	}
	for _, m := range report.Members {
		if m.Declaring != "" {
			fmt.Fprintf(formatter.Writer, "  %-8s %s.%s\n", m.Kind, m.Declaring, m.Name)
		} else {
			fmt.Fprintf(formatter.Writer, "  %-8s %s\n", m.Kind, m.Name)
		}
	}
	fmt.Fprintf(formatter.Writer, "selection hash: %s\n", report.SelectionHash)
	return nil
}

func buildSelectionReport(module string, types []*metadata.TypeDef, members []metadata.Member) (*SelectionReport, error) {
	report := &SelectionReport{Module: module}
	for _, t := range types {
		report.Types = append(report.Types, t.FullName())
	}
	for _, m := range members {
		mr := MemberReport{Kind: metadata.KindOf(m), Name: m.MemberName()}
		if d := m.Declaring(); d != nil {
			mr.Declaring = d.FullName()
		}
		report.Members = append(report.Members, mr)
	}

	hash, err := metadata.SelectionHash(types, members)
	if err != nil {
		return nil, fmt.Errorf("computing selection hash: %w", err)
	}
	report.SelectionHash = hash
	return report, nil
}
