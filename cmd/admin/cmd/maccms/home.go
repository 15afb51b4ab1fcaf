package maccms

import (
	"fmt"

	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

func newHomeCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Сводка главных страниц всех источников",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			items, err := c.Home(cmd.Context())
			if err != nil {
				return fmt.Errorf("ошибка получения сводки: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), items)
			}
			return printHomeItems(app.Out(), items)
		},
	}
}
