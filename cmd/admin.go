package main

import (
	"fmt"

	"clinic-appointment/cmd/bootstrap"
	"clinic-appointment/internal/delivery/dto"
	"clinic-appointment/pkg/validator"

	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var req dto.CreateAdminRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewValidator()
			if err := v.Validate(&req); err != nil {
				return fmt.Errorf("invalid admin: %v", v.FormatValidationErrors(err))
			}

			app, err := bootstrap.New(configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.AuthUsecase.CreateAdmin(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Email, "email", "", "admin email")
	create.Flags().StringVar(&req.Password, "password", "", "admin password (min 8 characters)")
	create.Flags().StringVar(&req.FullName, "name", "", "admin full name")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}
