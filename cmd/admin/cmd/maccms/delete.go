package maccms

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

func newDeleteCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить источник",
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

			deleted, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("ошибка удаления источника: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), map[string]int{"id": deleted})
			}
			_, err = fmt.Fprintf(app.Out(), "%s удален источник %d\n", okColor.Sprint("✓"), deleted)
			return err
		},
	}
}
