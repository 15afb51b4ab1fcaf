package maccms

import (
	"fmt"

	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
	"neovideo/internal/domain/maccms"
)

func newCreateCmd(app *admin.App) *cobra.Command {
	var req struct {
		name, api, respType string
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Добавить источник",
		Long: `Добавляет источник MacCMS. Тип ответа (json или xml) можно не указывать,
тогда сервер определит его по адресу.`,
		Example: "  neovideo-admin maccms create --name demo --api https://demo.example/api.php/provide/vod/",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}

			src, err := c.Create(cmd.Context(), maccms.CreateRequest{
				Name:     req.name,
				Api:      req.api,
				RespType: maccms.RespType(req.respType),
			})
			if err != nil {
				return fmt.Errorf("ошибка создания источника: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), src)
			}
			return printSource(app.Out(), src)
		},
	}

	cmd.Flags().StringVar(&req.name, "name", "", "название источника")
	cmd.Flags().StringVar(&req.api, "api", "", "адрес API источника")
	cmd.Flags().StringVarP(&req.respType, "type", "t", "", "тип ответа (json, xml)")

	return cmd
}
