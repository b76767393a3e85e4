package main

import (
	"clinic-appointment/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	app, err := bootstrap.New(configPath)
	if err != nil {
		return err
	}
	return app.Run()
}
