package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
	"github.com/deploymenttheory/go-multiboot2/pkg/app"
)

// globalOptions holds the persistent flags and the filesystem every command reads from
type globalOptions struct {
	fs afero.Fs

	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string
}

// NewRootCommand builds the command tree. Dumps, memory images and the
// config file are all read from fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	opts := &globalOptions{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "mb2info",
		Short: "Multiboot2 boot information inspector",
		Long: `mb2info decodes a multiboot2 boot information structure captured from a
boot loader hand-off and prints its tags, memory map and ELF section headers.

The dump is the raw table starting at its total_size field. ELF section names
live in the kernel image rather than in the table, so pass the memory that
holds the section header string table with --memory base:path.

Commands:
  inspect     Decode every supported tag
  tags        List the tags in order
  mmap        Show the memory map
  sections    Show the ELF section headers`,
		Version:       "0.1.0-dev",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&opts.outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./mb2info-config.yaml)")

	rootCmd.AddCommand(
		newInspectCommand(opts),
		newTagsCommand(opts),
		newMemoryMapCommand(opts),
		newSectionsCommand(opts),
	)
	return rootCmd
}

// Execute runs the command tree against the host filesystem and exits with
// a status derived from the error.
func Execute() {
	if err := NewRootCommand(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(app.ExitCodeOf(err))
	}
}

// newViper returns a viper instance reading from the command filesystem with
// the output flag bound to output_format.
func (o *globalOptions) newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetFs(o.fs)
	if f := cmd.Flags().Lookup("output"); f != nil {
		_ = v.BindPFlag("output_format", f)
	}
	return v
}

// newContext loads configuration and builds the application context
func (o *globalOptions) newContext(cmd *cobra.Command, v *viper.Viper) (*app.Context, *dump.Config, error) {
	cfg, err := dump.LoadConfig(v, o.configFile)
	if err != nil {
		return nil, nil, app.NewError(app.ErrCodeInvalidInput, "failed to load configuration", err)
	}

	ctx := app.NewContext()
	ctx.OutputFormat = cfg.OutputFormat
	ctx.Verbose = o.verbose
	ctx.Quiet = o.quiet
	ctx.Out = cmd.OutOrStdout()
	ctx.Logger.SetOutput(cmd.ErrOrStderr())
	ctx.ApplyVerbosity()

	if used := v.ConfigFileUsed(); used != "" {
		ctx.Logger.WithField("config", used).Debug("Loaded configuration")
	}
	return ctx, cfg, nil
}
