package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
	"github.com/deploymenttheory/go-multiboot2/pkg/app"
	"github.com/deploymenttheory/go-multiboot2/pkg/app/inspect"
	"github.com/deploymenttheory/go-multiboot2/pkg/services"
)

// dumpOptions holds the flags describing where a dump and its memory live
type dumpOptions struct {
	startAddress uint64
	memory       []string
	showReserved bool
}

func (d *dumpOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&d.startAddress, "start-address", 0, "physical address the boot information was loaded at (e.g. 0x10000)")
	cmd.Flags().StringArrayVarP(&d.memory, "memory", "m", nil, "physical memory image as base:path, repeatable (e.g. 0x100000:kernel.bin)")
}

func (d *dumpOptions) addReservedFlag(cmd *cobra.Command, name, usage string) {
	cmd.Flags().BoolVar(&d.showReserved, name, false, usage)
}

// bind lets the dump flags override the matching config keys
func (d *dumpOptions) bind(cmd *cobra.Command, v *viper.Viper, reservedFlag string) {
	_ = v.BindPFlag("start_address", cmd.Flags().Lookup("start-address"))
	if reservedFlag != "" {
		_ = v.BindPFlag("show_reserved", cmd.Flags().Lookup(reservedFlag))
	}
}

// memoryImages returns the configured images followed by the --memory ones
func (d *dumpOptions) memoryImages(cfg *dump.Config) ([]dump.MemoryImage, error) {
	images := append([]dump.MemoryImage{}, cfg.MemoryImages...)
	for _, arg := range d.memory {
		img, err := dump.ParseMemoryImage(arg)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "invalid --memory flag", err)
		}
		images = append(images, img)
	}
	return images, nil
}

// runView decodes the dump at path and prints the requested view
func runView(cmd *cobra.Command, opts *globalOptions, d *dumpOptions, reservedFlag string, view inspect.View, path string) error {
	v := opts.newViper(cmd)
	d.bind(cmd, v, reservedFlag)

	ctx, cfg, err := opts.newContext(cmd, v)
	if err != nil {
		return err
	}

	images, err := d.memoryImages(cfg)
	if err != nil {
		return err
	}

	request := &inspect.Request{
		Target: app.DumpTarget{
			Path:         path,
			StartAddress: cfg.StartAddress,
			MemoryImages: images,
		},
		View:         view,
		ShowReserved: cfg.ShowReserved,
		OutputFormat: ctx.OutputFormat,
	}

	factory := services.NewServiceFactory(opts.fs, ctx.Logger.WithField("command", cmd.Name()))
	defer factory.Shutdown()

	svc, err := factory.BootInfoService()
	if err != nil {
		return err
	}

	timed, cancel := ctx.WithTimeout(ctx.DefaultTimeout)
	defer cancel()

	// Handle the request through application layer
	response, err := inspect.Handle(timed, svc, request)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		ctx.Log(inspect.FormatSummary(response))
	}

	// Format and display results
	return inspect.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
