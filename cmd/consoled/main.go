package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/spf13/pflag"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/kubeovn/console/pkg/http/server"
	"github.com/kubeovn/console/pkg/kubeovn"
)

func main() {
	// Flag domain.
	fs := pflag.NewFlagSet("default", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "DESCRIPTION\n")
		fmt.Fprintf(os.Stderr, "  consoled serves the kube-ovn console API.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		fs.PrintDefaults()
	}
	var (
		listenAddr     = fs.StringP("listen", "l", ":3030", "Listen address for API clients")
		kubeconfig     = fs.String("kubeconfig", "", "Path to a kubeconfig; uses in-cluster configuration when empty")
		master         = fs.String("master", "", "Address of the Kubernetes API server; overrides any value in kubeconfig")
		requestTimeout = fs.Duration("request-timeout", 30*time.Second, "Timeout applied to each control-plane call; watch subscriptions are unaffected")
	)
	fs.Parse(os.Args[1:])

	// Logger domain.
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	// Platform component.
	var platform *kubeovn.Cluster
	{
		logger := log.With(logger, "component", "platform")
		restCfg, err := clusterConfig(*master, *kubeconfig)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		client, err := dynamic.NewForConfig(restCfg)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		platform = kubeovn.NewCluster(client, logger)
		logger.Log("host", restCfg.Host)
	}

	// HTTP transport component.
	handler := server.NewHandler(platform, *requestTimeout, log.With(logger, "component", "http"), server.NewRouter())
	srv := &http.Server{Addr: *listenAddr, Handler: handler}

	errc := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()
	go func() {
		logger.Log("addr", *listenAddr)
		errc <- srv.ListenAndServe()
	}()

	logger.Log("exiting", <-errc)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// clusterConfig prefers an explicit kubeconfig, then in-cluster
// credentials, then the default kubeconfig location -- the same order
// kubectl-adjacent tools use.
func clusterConfig(master, kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		return clientcmd.BuildConfigFromFlags(master, kubeconfig)
	}
	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}
	return clientcmd.BuildConfigFromFlags(master, clientcmd.RecommendedHomeFile)
}
