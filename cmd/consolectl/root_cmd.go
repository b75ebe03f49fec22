package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	transport "github.com/kubeovn/console/pkg/http"
	"github.com/kubeovn/console/pkg/http/client"
)

const (
	EnvVariableURL = "CONSOLE_URL"
)

type rootOpts struct {
	URL string
	API *client.Client
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
consolectl manages kube-ovn resources through the console API.

Workflow:
  consolectl resources                                             # Which kinds can I work with?
  consolectl list subnets                                          # Which subnets exist?
  consolectl create subnets --name s1 --spec '{"cidrBlock":"10.0.0.0/24"}'
  consolectl patch subnets s1 --spec '{"gateway":"10.0.0.1"}'
  consolectl delete subnets s1
  consolectl watch                                                 # Stream change events.
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "consolectl",
		Long:              rootLongHelp,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.PersistentPreRunE,
	}
	cmd.PersistentFlags().StringVarP(&opts.URL, "url", "u", "http://localhost:3030",
		fmt.Sprintf("base URL of the consoled API server; you can also set the environment variable %s", EnvVariableURL))

	cmd.AddCommand(
		newResources(opts).Command(),
		newList(opts).Command(),
		newCreate(opts).Command(),
		newPatch(opts).Command(),
		newDelete(opts).Command(),
		newWatch(opts).Command(),
	)

	return cmd
}

func (opts *rootOpts) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	url := os.Getenv(EnvVariableURL)
	if cmd.Flags().Changed("url") || url == "" {
		url = opts.URL
	}

	opts.API = client.New(http.DefaultClient, transport.NewAPIRouter(), url)
	return nil
}
