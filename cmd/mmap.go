package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-multiboot2/pkg/app/inspect"
)

func newMemoryMapCommand(opts *globalOptions) *cobra.Command {
	d := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "mmap [dump]",
		Short: "Show the memory map of a boot information dump",
		Long: `Show the memory areas reported by the boot loader. Only available RAM
is listed unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, d, "all", inspect.ViewMemoryMap, args[0])
		},
	}

	d.addFlags(cmd)
	d.addReservedFlag(cmd, "all", "list every memory map entry, not only available RAM")
	return cmd
}
