package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubeovn/console/pkg/api"
)

type createOpts struct {
	*rootOpts
	name      string
	namespace string
	spec      string
}

func newCreate(parent *rootOpts) *createOpts {
	return &createOpts{rootOpts: parent}
}

func (opts *createOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <resource>",
		Short: "Create an object with the given name and spec.",
		Example: makeExample(
			`consolectl create subnets --name s1 --spec '{"cidrBlock":"10.0.0.0/24"}'`,
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "Name of the object to create")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Namespace to record in the object's metadata, if any")
	cmd.Flags().StringVar(&opts.spec, "spec", "{}", "Spec of the object, as a JSON document")
	return cmd
}

func (opts *createOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError("expected argument <resource>")
	}
	if opts.name == "" {
		return newUsageError("--name is required")
	}

	var spec map[string]interface{}
	if err := json.Unmarshal([]byte(opts.spec), &spec); err != nil {
		return newUsageError("--spec must be a JSON object: " + err.Error())
	}

	created, err := opts.API.CreateObject(context.Background(), args[0], api.CreateBody{
		Name:      opts.name,
		Namespace: opts.namespace,
		Spec:      spec,
	})
	if err != nil {
		return err
	}
	return outputJSON(os.Stdout, created)
}
