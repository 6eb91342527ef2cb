package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	authClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/authprovider"
	proClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/prodirectory"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

// AuthProvider интерфейс проверки access-токенов
type AuthProvider interface {
	VerifyAccessToken(ctx context.Context, token string) (*authClient.TokenInfo, error)
}

// ProDirectory интерфейс поиска профиля исполнителя по пользователю
type ProDirectory interface {
	GetProfileByUserID(ctx context.Context, userID string) (*proClient.ProProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth middleware аутентификации. Проверяет Bearer-токен через внешний
// AuthProvider и кладёт domain.Actor в контекст запроса. Для роли PRO
// дополнительно резолвит профиль исполнителя: ID профиля и ID
// пользователя - разные идентификаторы.
type Auth struct {
	authProvider AuthProvider
	proDir       ProDirectory
	logger       Logger
}

// NewAuth создает новый middleware аутентификации
func NewAuth(authProvider AuthProvider, proDir ProDirectory, logger Logger) *Auth {
	return &Auth{
		authProvider: authProvider,
		proDir:       proDir,
		logger:       logger,
	}
}

// Middleware оборачивает handler проверкой аутентификации
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		info, err := a.authProvider.VerifyAccessToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, authClient.ErrInvalidToken) {
				a.logger.Warn("Auth: invalid token: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			a.logger.Error("Auth: token verification failed: %v", err)
			handlers.RespondInternalError(w)
			return
		}

		actor := domain.Actor{
			UserID: info.UserID,
			Role:   domain.Role(info.Role),
		}
		if !domain.IsValidRole(actor.Role) {
			a.logger.Warn("Auth: unknown role=%q for user=%s", info.Role, info.UserID)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		if actor.Role == domain.RolePro {
			profile, err := a.proDir.GetProfileByUserID(r.Context(), info.UserID)
			if err != nil && !errors.Is(err, proClient.ErrProfileNotFound) {
				a.logger.Error("Auth: failed to resolve pro profile for user=%s: %v", info.UserID, err)
				handlers.RespondInternalError(w)
				return
			}
			if profile != nil {
				actor.ProProfileID = &profile.ID
			}
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor извлекает актора из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
