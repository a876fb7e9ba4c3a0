package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/souq/internal/kernel"
	"github.com/shashiranjanraj/souq/internal/server"
)

// souq serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server (and gRPC health when GRPC_PORT is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// souq route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every named route",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Routes are only registered, never served, so no connection is needed.
		k, err := kernel.NewHTTPKernel(kernel.Config{})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
