package maccms

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

func newCheckCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Запросить главную страницу источника",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("некорректный id %q: %w", args[0], err)
			}

			c, err := app.Client()
			if err != nil {
				return err
			}

			home, err := c.Check(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("ошибка проверки источника: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), home)
			}
			return printHome(app.Out(), fmt.Sprintf("Источник %d", id), home)
		},
	}
}
