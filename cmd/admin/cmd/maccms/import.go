package maccms

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"neovideo/internal/app/admin"
)

var errInteractiveStdin = errors.New("stdin - терминал: передайте файл или данные через pipe")

func newImportCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Пакетный импорт источников",
		Long: `Отправляет текст на сервер для пакетного импорта. Формат: по строке на
источник (name,api[,type]; разделители , $ | или пробел) либо JSON-массив.
Без аргумента или с "-" читает stdin.`,
		Example: "  cat sources.txt | neovideo-admin maccms import\n  neovideo-admin maccms import sources.json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(app.In(), args)
			if err != nil {
				return err
			}

			c, err := app.Client()
			if err != nil {
				return err
			}

			n, err := c.BatchImport(cmd.Context(), string(raw))
			if err != nil {
				return fmt.Errorf("ошибка импорта: %w", err)
			}

			if app.JSON() {
				return printJSON(app.Out(), map[string]int{"imported": n})
			}
			_, err = fmt.Fprintf(app.Out(), "%s импортировано источников: %d\n", okColor.Sprint("✓"), n)
			return err
		},
	}
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла: %w", err)
		}
		return data, nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errInteractiveStdin
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения stdin: %w", err)
	}
	return data, nil
}
