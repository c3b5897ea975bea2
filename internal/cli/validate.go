package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/implicitlycorrect/graft/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Module string                     `json:"module,omitempty"`
	Errors []manifest.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest.cue>",
		Short: "Validate a module manifest",
		Long: `Validate a CUE module manifest without selecting or merging.

Compiles the manifest and checks the resulting module graph against
structural rules: duplicate names, unknown markers, accessor links,
global-type misuse. Collects all errors instead of failing fast.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Compiled module %q with %d type(s)", mod.Name, len(mod.AllTypes()))

	validationErrors := manifest.Validate(mod)
	if len(validationErrors) > 0 {
		result := ValidationResult{Valid: false, Module: mod.Name, Errors: validationErrors}
		if formatter.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(formatter.Writer, "Module %q is invalid:\n", mod.Name)
			for _, verr := range validationErrors {
				fmt.Fprintf(formatter.Writer, "  %s\n", verr.Error())
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(validationErrors)))
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Module: mod.Name})
	}
	return formatter.Success(fmt.Sprintf("Module %q is valid", mod.Name))
}
