package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubeovn/console/pkg/api"
)

type patchOpts struct {
	*rootOpts
	spec string
}

func newPatch(parent *rootOpts) *patchOpts {
	return &patchOpts{rootOpts: parent}
}

func (opts *patchOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <resource> <name>",
		Short: "Merge the given keys into an object's spec.",
		Long:  "The given spec keys are merged shallowly: colliding keys are replaced wholesale, nested objects are not merged.",
		Example: makeExample(
			`consolectl patch subnets s1 --spec '{"gateway":"10.0.0.1"}'`,
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVar(&opts.spec, "spec", "", "Spec keys to merge, as a JSON document")
	return cmd
}

func (opts *patchOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return newUsageError("expected arguments <resource> <name>")
	}

	var spec map[string]interface{}
	if err := json.Unmarshal([]byte(opts.spec), &spec); err != nil {
		return newUsageError("--spec must be a JSON object: " + err.Error())
	}

	patched, err := opts.API.PatchObject(context.Background(), args[0], args[1], api.PatchBody{Spec: spec})
	if err != nil {
		return err
	}
	return outputJSON(os.Stdout, patched)
}
