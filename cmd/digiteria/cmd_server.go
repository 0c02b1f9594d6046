package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/digiteria/app/routes"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/internal/server"
	"github.com/shashiranjanraj/digiteria/pkg/router"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

// digiteria serve — start the HTTP (and optional gRPC) server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the marketplace server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// digiteria route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered API routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Mount against a throwaway in-memory store; we only want the table.
		st := store.Open(slot.NewMemory())
		defer st.Close()

		r := router.New()
		routes.RegisterAPI(r, routes.Deps{
			Store:    st,
			Hub:      ws.NewHub(),
			Payments: &services.SandboxProvider{},
		})

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
