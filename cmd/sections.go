package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-multiboot2/pkg/app/inspect"
)

func newSectionsCommand(opts *globalOptions) *cobra.Command {
	d := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "sections [dump]",
		Short: "Show the ELF section headers of the booted kernel",
		Long: `Show the ELF section headers passed by the boot loader. Names are read
from the section header string table, which must be reachable through the dump
itself or a --memory image.

Example:
  mb2info sections mbi.bin --start-address 0x10000 -m 0x100000:kernel.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, d, "", inspect.ViewSections, args[0])
		},
	}

	d.addFlags(cmd)
	return cmd
}
