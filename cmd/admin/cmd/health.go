package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

// health проверяет доступность сервера
type health struct{}

func (health) Name() string { return "health" }

func (health) Install(app *admin.App) error {
	app.Root().AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Проверить доступность сервера",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			if err := c.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("сервер %s недоступен: %w", c.BaseURL(), err)
			}
			_, err = fmt.Fprintf(app.Out(), "%s %s\n", color.GreenString("OK"), c.BaseURL())
			return err
		},
	})
	return nil
}
