package main

import (
	"fmt"

	httpserver "cms-api/internal/http-server"
	"cms-api/internal/http-server/middleware/metrics"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger/sl"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the HTTP route documentation as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		// Handlers are never invoked, so no services are needed.
		r := httpserver.NewRouter(sl.Discard(), httpserver.Services{}, jwt.NewAuth("docs"), metrics.New())
		fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(r))
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
