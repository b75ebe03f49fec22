package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubeovn/console/pkg/api"
)

type watchOpts struct {
	*rootOpts
}

func newWatch(parent *rootOpts) *watchOpts {
	return &watchOpts{rootOpts: parent}
}

func (opts *watchOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream change events for every resource kind, one JSON object per line.",
		RunE:  opts.RunE,
	}
}

func (opts *watchOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}

	ws, err := opts.API.WatchEvents()
	if err != nil {
		return err
	}
	defer ws.Close()

	dec := json.NewDecoder(ws)
	enc := json.NewEncoder(os.Stdout)
	for {
		var ev api.Event
		if err := dec.Decode(&ev); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("event stream ended: %v", err)
		}
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
}
