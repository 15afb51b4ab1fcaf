package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	tokenutil "neovideo/internal/utils/token"
)

// Auth проверяет bearer-токен администратора по bcrypt-хэшу
type Auth struct {
	api  huma.API
	hash []byte
	log  *slog.Logger
}

func New(api huma.API, tokenHash string, log *slog.Logger) *Auth {
	return &Auth{
		api:  api,
		hash: []byte(tokenHash),
		log:  log.With("component", "auth_middleware"),
	}
}

// Enabled сообщает, настроен ли хэш токена
func (a *Auth) Enabled() bool {
	return len(a.hash) > 0
}

// Middleware возвращает middleware для Huma; без хэша возвращает nil
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	if !a.Enabled() {
		return nil
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.log.Warn("missing bearer token", "path", ctx.URL().Path)
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if !tokenutil.Verify(a.hash, token) {
			a.log.Warn("invalid admin token", "path", ctx.URL().Path)
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(ctx)
	}
}
