package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/pkg/tokenpkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// Authorization header constants.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Authorization header errors.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	ErrSubjectNotAllowed   = errors.New("token subject is not allowed")
)

// AddAuthorization signs a token for the subject and puts it into the request header.
func AddAuthorization(
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	subject string,
	duration time.Duration,
) error {
	token, _, err := tokenMaker.CreateToken(subject, duration)
	if err != nil {
		return err
	}

	request.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware rejects requests without a valid bearer token issued to
// subject. The verified payload is stored in the gin context under AuthPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker, subject string) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			l.Info().Err(err).Msg("token rejected")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		if payload.Subject != subject {
			l.Warn().Str("subject", payload.Subject).Msg("token subject rejected")
			gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrSubjectNotAllowed))

			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}
