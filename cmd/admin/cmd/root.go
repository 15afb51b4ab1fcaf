package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neovideo/cmd/admin/cmd/maccms"
	"neovideo/cmd/admin/cmd/token"
	"neovideo/internal/app/admin"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neovideo-admin",
		Short: "Neovideo - администрирование источников MacCMS",
		Long: `neovideo-admin управляет списком источников MacCMS на сервере Neovideo:
просмотр, добавление, удаление и пакетный импорт.

Адрес сервера и токен берутся из ~/.neovideo/config.yaml, окружения
(SERVER_ADDRESS, ADMIN_TOKEN) или флагов --server и --token.`,
	}
}

// Execute собирает приложение из плагинов и выполняет команду из os.Args
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := admin.New(newRootCmd()).
		Use(health{}).
		Use(maccms.Plugin()).
		Use(token.Plugin()).
		Mount(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		stop()
		os.Exit(1)
	}
}
