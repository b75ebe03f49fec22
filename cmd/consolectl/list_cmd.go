package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

type listOpts struct {
	*rootOpts
}

func newList(parent *rootOpts) *listOpts {
	return &listOpts{rootOpts: parent}
}

func (opts *listOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "list <resource>",
		Short: "List the objects of a resource kind.",
		Example: makeExample(
			"consolectl list subnets",
			"consolectl list vpc-nat-gateways",
		),
		RunE: opts.RunE,
	}
}

func (opts *listOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError("expected argument <resource>")
	}

	objects, err := opts.API.ListObjects(context.Background(), args[0])
	if err != nil {
		return err
	}
	return outputJSON(os.Stdout, objects)
}
