package inspect

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deploymenttheory/go-multiboot2/pkg/app"
)

var outputFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
}

// Validate validates an inspection request, reporting every problem at once
func (r *Request) Validate() error {
	var result *multierror.Error

	if err := r.Target.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if r.View == "" {
		r.View = ViewAll
	}
	if !validView(r.View) {
		result = multierror.Append(result, fmt.Errorf("unsupported view: %s", r.View))
	}

	if r.OutputFormat != "" && !outputFormats[r.OutputFormat] {
		result = multierror.Append(result, fmt.Errorf("unsupported output format: %s", r.OutputFormat))
	}

	if r.Target.StartAddress%8 != 0 {
		result = multierror.Append(result, fmt.Errorf("start address %#x is not 8-byte aligned", r.Target.StartAddress))
	}

	if err := result.ErrorOrNil(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid inspect request", err)
	}
	return nil
}

func validView(v View) bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}
