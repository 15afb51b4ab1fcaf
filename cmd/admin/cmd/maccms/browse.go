package maccms

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"neovideo/internal/app/admin"
	"neovideo/internal/app/admin/tui"
)

func newBrowseCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Интерактивный просмотр источников",
		Long:  "Таблица источников в терминале: r - обновить, d - удалить, i - импорт, q - выход.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("browse требует интерактивный терминал")
			}

			c, err := app.Client()
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), c, app.In(), app.Out())
		},
	}
}
