package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type deleteOpts struct {
	*rootOpts
}

func newDelete(parent *rootOpts) *deleteOpts {
	return &deleteOpts{rootOpts: parent}
}

func (opts *deleteOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <name>",
		Short: "Delete the named object.",
		Example: makeExample(
			"consolectl delete subnets s1",
		),
		RunE: opts.RunE,
	}
}

func (opts *deleteOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return newUsageError("expected arguments <resource> <name>")
	}

	msg, err := opts.API.DeleteObject(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
