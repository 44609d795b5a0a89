package mcpd

import (
	"context"

	"github.com/jessevdk/go-flags"

	"github.com/mcpdispatch/mcpd/config"
)

// Run resolves options from flags and the environment, then serves stdio.
func Run(args []string) error {
	options := &config.Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	return service.ListenAndServe()
}
