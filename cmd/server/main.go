package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstdesk/internal/auth"
	"gstdesk/internal/config"
	"gstdesk/internal/domain"
	noopemail "gstdesk/internal/email/noop"
	sesemail "gstdesk/internal/email/ses"
	"gstdesk/internal/handler"
	"gstdesk/internal/logger"
	"gstdesk/internal/port"
	"gstdesk/internal/render"
	"gstdesk/internal/render/pdf"
	"gstdesk/internal/router"
	"gstdesk/internal/service"
	s3storage "gstdesk/internal/storage/s3"
	"gstdesk/internal/submission"
	"gstdesk/internal/validator/invoice"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	defaultFormat, err := domain.ParseDocumentFormat(cfg.Invoice.DefaultFormat)
	if err != nil {
		return fmt.Errorf("invalid default invoice format %q: %w", cfg.Invoice.DefaultFormat, err)
	}

	// Initialize renderers
	htmlRenderer, err := render.NewHTMLRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTML renderer: %w", err)
	}
	renderers := render.NewRegistry(htmlRenderer, pdf.NewPDFRenderer())

	flow := submission.NewFlow(invoice.NewChecker(), log)

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.ArchiveEnabled {
		storage, err = s3storage.NewS3Client(&cfg.S3, log)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		log.Info("email provider: SES")
	default:
		emailSender = noopemail.NewNoopSender(log)
		log.Info("email provider: noop (emails logged only)")
	}

	failures := service.NoFailures()
	if cfg.Fault.Rate > 0 {
		log.WithField("rate", cfg.Fault.Rate).Warn("fault injection enabled for archive and email")
		failures = service.NewRandomFailurePolicy(cfg.Fault.Rate, rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // not security sensitive
	}

	// Initialize services
	invoiceSvc := service.NewInvoiceService(flow, renderers, storage, emailSender, failures, service.ArchiveConfig{
		Enabled:       cfg.S3.ArchiveEnabled,
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.Invoice.KeyPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	}, log)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, defaultFormat, cfg.Invoice.MaxItems, log)
	healthH := handler.NewHealthHandler(renderers)

	var verifier auth.TokenVerifier
	if cfg.JWT.Enabled {
		verifier = auth.NewHMACVerifier(cfg.JWT)
	}

	// Setup router
	r := router.Setup(cfg, log, verifier, invoiceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
