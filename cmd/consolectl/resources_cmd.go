package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type resourcesOpts struct {
	*rootOpts
}

func newResources(parent *rootOpts) *resourcesOpts {
	return &resourcesOpts{rootOpts: parent}
}

func (opts *resourcesOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resource kinds the console serves.",
		RunE:  opts.RunE,
	}
}

func (opts *resourcesOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}

	resources, err := opts.API.ListResources(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "RESOURCE\tKIND\tNAMESPACED")
	for _, r := range resources {
		fmt.Fprintf(w, "%s\t%s\t%v\n", r.Plural, r.Kind, r.Namespaced)
	}
	return w.Flush()
}
