package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/solar-epc-api/internal/application/analytics"
	"github.com/jhoicas/solar-epc-api/internal/application/auth"
	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/jobs"
	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/application/project"
	"github.com/jhoicas/solar-epc-api/internal/application/usecase"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
	infracache "github.com/jhoicas/solar-epc-api/internal/infrastructure/cache"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/solar-epc-api/internal/infrastructure/pdf"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/tally"
	httpRouter "github.com/jhoicas/solar-epc-api/internal/interfaces/http"
	"github.com/jhoicas/solar-epc-api/pkg/config"
	"github.com/jhoicas/solar-epc-api/pkg/jwt"
	"github.com/jhoicas/solar-epc-api/pkg/logger"
)

// backend persistencia elegida por DB_DRIVER.
type backend struct {
	tx        ports.TxRunner
	repos     repository.TxRepositories
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON planos, nunca strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer be.close()

	m := metrics.New()

	var docCache ports.DocumentCache
	if cfg.Redis.Addr != "" {
		rc, err := infracache.Connect(ctx, cfg.Redis)
		if err != nil {
			// Sin Redis la API sigue funcionando: los PDF se generan en cada petición.
			log.Warn().Err(err).Msg("redis no disponible, caché de PDF desactivada")
		} else {
			defer rc.Close()
			docCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de PDF en redis")
		}
	}

	tokens, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}

	r := be.repos
	ledgerUC := inventory.NewLedgerUseCase(be.tx, r.Items, r.Projects, r.Ledger, m, inventory.Config{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
	})
	paymentUC := billing.NewPaymentUseCase(be.tx, r.Invoices, r.Projects, r.Payments, m)
	deps := httpRouter.RouterDeps{
		CompanyUC:       usecase.NewCompanyUseCase(r.Companies),
		UserUC:          usecase.NewUserUseCase(be.users),
		ItemUC:          usecase.NewItemUseCase(be.tx, r.Items, ledgerUC),
		LedgerUC:        ledgerUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(r.Items),
		CustomerUC:      billing.NewCustomerUseCase(r.Customers),
		QuotationUC:     billing.NewQuotationUseCase(be.tx, r.Companies, r.Customers, r.Items, r.Quotations, m),
		InvoiceUC: billing.NewInvoiceUseCase(
			be.tx, ledgerUC,
			r.Companies, r.Customers, r.Items, r.Quotations, r.Projects, r.Invoices,
			m,
		),
		PaymentUC: paymentUC,
		DocumentUC: billing.NewDocumentUseCase(
			r.Invoices, r.Quotations, r.Companies, r.Customers,
			infrapdf.NewMarotoPDFGenerator(), tally.NewExporter(),
			docCache, time.Duration(cfg.Redis.PDFTTLMinutes)*time.Minute,
		),
		ProjectUC:   project.NewUseCase(r.Projects, r.Customers, r.Quotations),
		DashboardUC: appanalytics.NewDashboardUseCase(be.analytics, r.Items),
		AuthUC:         auth.NewAuthUseCase(be.users, r.Companies, tokens),
		Tokens:         tokens,
		MetricsHandler: m.Handler(),
	}

	// Recordatorio diario: facturas vencidas, etapas por cobrar y stock bajo.
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ReminderCron != "" {
		reminder := jobs.NewReminderJob(r.Companies, r.Invoices, r.Projects, r.Items, m)
		scheduler = jobs.NewScheduler(cfg.Jobs.ReminderCron, reminder, log.Component("jobs"))
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Jobs.ReminderCron).Msg("programar recordatorio")
		}
		log.Info().Str("spec", cfg.Jobs.ReminderCron).Msg("recordatorio programado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Solar EPC API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db_driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openBackend abre PostgreSQL (aplicando migraciones si corresponde) o el store en memoria.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.New()
		return &backend{
			tx:        store,
			repos:     store.Repositories(),
			users:     store.Users(),
			analytics: store.Analytics(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		tx:        postgres.NewTxRunner(pool),
		repos:     postgres.Repositories(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
