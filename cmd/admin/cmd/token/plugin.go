package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"neovideo/internal/app/admin"
	tokenutil "neovideo/internal/utils/token"
)

var errEmptyToken = errors.New("токен не может быть пустым")

type plugin struct{}

// Plugin команды token: hash
func Plugin() admin.Plugin {
	return plugin{}
}

func (plugin) Name() string { return "token" }

func (plugin) Install(app *admin.App) error {
	root := &cobra.Command{
		Use:   "token",
		Short: "Токен администратора",
	}
	root.AddCommand(newHashCmd(app))
	app.Root().AddCommand(root)
	return nil
}

func newHashCmd(app *admin.App) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Получить bcrypt-хэш токена для ADMIN_TOKEN_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := readToken(app.In(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			hash, err := tokenutil.Hash(token)
			if err != nil {
				return fmt.Errorf("ошибка хэширования токена: %w", err)
			}

			_, err = fmt.Fprintln(app.Out(), hash)
			return err
		},
	}
}

// readToken читает токен без эха из терминала или первой строкой из pipe
func readToken(in io.Reader, prompt io.Writer) (string, error) {
	var token string

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Токен: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения токена: %w", err)
		}
		token = string(raw)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("ошибка чтения токена: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}
	return token, nil
}
