package main

import (
	"github.com/spf13/cobra"

	"vdicost/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the estimate HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, estimator, logger, err := setup()
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	return server.New(estimator, logger).Run(cmd.Context(), addr)
}
