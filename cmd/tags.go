package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-multiboot2/pkg/app/inspect"
)

func newTagsCommand(opts *globalOptions) *cobra.Command {
	d := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "tags [dump]",
		Short: "List the tags of a boot information dump in order",
		Long: `List every tag up to the end tag with its offset, type and size.
Tag types this tool does not decode are listed as Unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, d, "", inspect.ViewTags, args[0])
		},
	}

	d.addFlags(cmd)
	return cmd
}
