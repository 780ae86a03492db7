// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/accountdelivery"
	"github.com/go-petr/card-ledger/internal/accountrepo"
	"github.com/go-petr/card-ledger/internal/accountservice"
	"github.com/go-petr/card-ledger/internal/admindelivery"
	"github.com/go-petr/card-ledger/internal/cardrepo"
	"github.com/go-petr/card-ledger/internal/cardservice"
	"github.com/go-petr/card-ledger/internal/codedelivery"
	"github.com/go-petr/card-ledger/internal/coderepo"
	"github.com/go-petr/card-ledger/internal/codeservice"
	"github.com/go-petr/card-ledger/internal/entryrepo"
	"github.com/go-petr/card-ledger/internal/ledgerrepo"
	"github.com/go-petr/card-ledger/internal/ledgerservice"
	"github.com/go-petr/card-ledger/internal/middleware"
	"github.com/go-petr/card-ledger/internal/sessionservice"
	"github.com/go-petr/card-ledger/internal/transferdelivery"
	"github.com/go-petr/card-ledger/pkg/configpkg"
	"github.com/go-petr/card-ledger/pkg/tokenpkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// ServiceName is reported by the health endpoint and attached to every log line.
const ServiceName = "card-ledger"

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, dispatcher codeservice.Dispatcher) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	cardRepo := cardrepo.NewRepoPGS(conn)
	codeRepo := coderepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.New(config.TokenKind, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	sessionService, err := sessionservice.New(tokenMaker, config.AdminSecretHash, config.AdminTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	accountService := accountservice.New(accountRepo, entryRepo)
	cardService := cardservice.New(cardRepo, accountRepo)
	codeService := codeservice.New(codeRepo, accountRepo, cardService, dispatcher,
		codeservice.WithTTL(config.CodeTTL))
	ledgerService := ledgerservice.New(ledgerRepo, cardService)

	accountHandler := accountdelivery.NewHandler(accountService)
	codeHandler := codedelivery.NewHandler(codeService)
	transferHandler := transferdelivery.NewHandler(ledgerService)
	adminHandler := admindelivery.NewHandler(sessionService, cardService, accountService)

	if err := web.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("cannot register validators: %w", err)
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"ok": true, "service": ServiceName})
	})

	engine.GET("/balance", accountHandler.GetBalance)
	engine.GET("/transactions", accountHandler.ListTransactions)
	engine.POST("/codes", codeHandler.Issue)
	engine.POST("/transfers", transferHandler.Transfer)
	engine.POST("/withdrawals", transferHandler.Withdraw)

	engine.POST("/admin/sessions", adminHandler.Login)

	adminRoutes := engine.Group("/admin").Use(middleware.AuthMiddleware(sessionService.TokenMaker, sessionservice.AdminSubject))

	adminRoutes.POST("/cards", adminHandler.RegisterCard)
	adminRoutes.PUT("/accounts/:user/notification", adminHandler.LinkNotificationAddress)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
