package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-multiboot2/pkg/app/inspect"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	d := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [dump]",
		Short: "Decode every supported tag of a boot information dump",
		Long: `Decode the tag list, basic memory information, memory map and ELF
section headers of a multiboot2 boot information dump.

Tags the dump does not carry are left out of the report.

Examples:
  # Decode a dump captured at 0x10000
  mb2info inspect mbi.bin --start-address 0x10000

  # Resolve section names from a kernel image loaded at 1 MiB
  mb2info inspect mbi.bin -m 0x100000:kernel.bin -o yaml`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, d, "show-reserved", inspect.ViewAll, args[0])
		},
	}

	d.addFlags(cmd)
	d.addReservedFlag(cmd, "show-reserved", "list reserved memory map entries too")
	return cmd
}
