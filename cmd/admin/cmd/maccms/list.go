package maccms

import (
	"fmt"

	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

func newListCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список источников",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			sources, err := c.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("ошибка получения списка источников: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), sources)
			}
			return printSourcesTable(app.Out(), sources)
		},
	}
}
