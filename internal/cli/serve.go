package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	grpcctx "github.com/dtroode/storefront-server/internal/api/grpc/context"
	"github.com/dtroode/storefront-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/storefront-server/internal/api/grpc/server"
	"github.com/dtroode/storefront-server/internal/config"
	"github.com/dtroode/storefront-server/internal/i18n"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/payment"
	"github.com/dtroode/storefront-server/internal/server"
	"github.com/dtroode/storefront-server/internal/service"
	"github.com/dtroode/storefront-server/internal/token"
)

const (
	shutdownTimeout    = 10 * time.Second
	tokenPurgeInterval = time.Hour
	boltOpenTimeout    = time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC server",
		Long: `Start the storefront gRPC server.

The server runs until SIGINT or SIGTERM, then drains in-flight calls and
closes every open session.

Example:
  STORE_DRIVER=memory storefront serve
  STRIPE_SECRET_KEY=sk_test_... storefront serve -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			defer stop()

			cfg, logger, err := setup(rootOpts)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *logger.Logger) error {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	tokenManager, err := token.NewJWT(cfg.JWT.Secret)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	kdf := model.KDFParams{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Par: cfg.KDF.Par}
	authService := service.NewAuth(st.users, st.documents, st.refreshTokens, tokenManager, kdf, logger)

	basketSync := service.NewBasketSync(st.documents, cfg.Sync.RollbackFailedAdds, logger)
	sessions := service.NewSessions(basketSync, cfg.Session.IdleTimeout, logger)

	catalog := service.NewCatalog(st.documents, logger)
	if err := catalog.Start(ctx); err != nil {
		return fmt.Errorf("failed to start title catalog: %w", err)
	}
	defer catalog.Close()

	var payments model.PaymentProcessor
	if cfg.Stripe.SecretKey != "" {
		stripe, err := payment.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
		if err != nil {
			return fmt.Errorf("failed to create payment processor: %w", err)
		}
		payments = stripe
	} else {
		logger.Warn("Serve: STRIPE_SECRET_KEY is empty, checkout is disabled")
	}

	var receipts model.ReceiptArchive
	if cfg.Storage.Enabled {
		archive, err := openReceiptArchive(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		receipts = archive
	}

	checkout := service.NewCheckout(st.documents, payments, receipts, basketSync, logger)

	localizer, err := i18n.NewLocalizer(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("failed to create localizer: %w", err)
	}

	r := router.New(router.Services{
		Auth:       authService,
		Sessions:   sessions,
		BasketSync: basketSync,
		Products:   service.NewProducts(st.documents),
		Checkout:   checkout,
		Catalog:    catalog,
	}, localizer, grpcctx.NewManager(), logger)

	srv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	wg.Add(2)
	go func() {
		defer wg.Done()
		sessions.Run(bgCtx, cfg.Session.SweepInterval)
	}()
	go func() {
		defer wg.Done()
		purgeTokens(bgCtx, authService.Tokens(), logger)
	}()

	serveErr := make(chan error, 1)
	go func(s model.Server) {
		logger.Info("Starting server on", "address", s.Address())
		serveErr <- s.Start(sl)
	}(srv)

	select {
	case err = <-serveErr:
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	case <-ctx.Done():
		logger.Info("received interruption signal, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if stopErr := srv.Stop(shutdownCtx); stopErr != nil {
			logger.Error("error during server shutdown", "error", stopErr, "address", srv.Address())
		}
		err = <-serveErr
	}

	cancelBackground()
	wg.Wait()
	logger.Info("shutdown complete")
	return err
}

// purgeTokens deletes expired refresh tokens until ctx is done.
func purgeTokens(ctx context.Context, tokens *service.TokenService, logger *logger.Logger) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := tokens.PurgeExpired(ctx); err != nil {
				logger.Error("Serve: failed to purge refresh tokens", "error", err)
			}
		}
	}
}
