package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/dotcart/internal/accounts"
	"github.com/dropDatabas3/dotcart/internal/cache"
	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/config"
	"github.com/dropDatabas3/dotcart/internal/email"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/handlers"
	"github.com/dropDatabas3/dotcart/internal/httpx/router"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/security/password"
	"github.com/dropDatabas3/dotcart/internal/store/pg"
)

func main() {
	// .env si existe; en contenedores alcanza con el entorno
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "dotcart",
		Short:         "Storefront backend: cuentas, sesiones y catálogo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "ruta al YAML de configuración")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate [up|down] [steps]",
		Short: "Aplica migraciones SQL (*_up.sql / *_down.sql)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			action := "up"
			steps := 0
			if len(args) >= 1 {
				action = strings.ToLower(args[0])
			}
			if len(args) >= 2 {
				if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
					steps = n
				}
			}
			return runMigrate(configPath, dir, action, steps)
		},
	}
	migrateCmd.Flags().String("dir", "migrations/postgres", "directorio de migraciones")

	root.AddCommand(serveCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		// fatal: secret vacío, DSN vacío o SMTP a medias no se arrancan
		return err
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: "info", ServiceName: "dotcart"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	ctx := context.Background()

	repo, err := pg.New(ctx, cfg.Storage.DSN, pg.Tuning{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer repo.Close()

	memTTL, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
	cc, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: memTTL,
	})
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer func() { _ = cc.Close() }()

	issuer, err := jwtx.NewIssuer(cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Secret, cfg.JWTTTL())
	if err != nil {
		return err
	}

	var sender email.Sender = email.Noop{}
	if cfg.SMTP.Enabled {
		s := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		s.TLSMode = cfg.SMTP.TLS
		s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = s
	} else {
		log.Warn("smtp disabled, emails go to noop sender")
	}
	notifier := &email.Notifier{Sender: sender, BaseURL: cfg.Email.BaseURL}

	policy := password.Policy{MinLength: cfg.Security.PasswordPolicy.MinLength}
	accountsSvc := accounts.NewService(repo.Users(), policy, notifier)

	storeSvc := &catalog.StoreService{Stores: repo.Stores()}
	productSvc := &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}
	brandSvc := &catalog.BrandService{Brands: repo.Brands(), Stores: repo.Stores(), StoreBrands: repo.StoreBrands(), Cache: cc}
	addressSvc := &catalog.AddressService{Addresses: repo.Addresses(), Stores: repo.Stores()}

	metricsHandler, err := httpx.RegisterMetrics(httpx.MetricsConfig{
		Pool: func() *pgxpool.Pool { return repo.Pool() },
	})
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	h := router.New(router.Deps{
		Issuer:    issuer,
		Users:     &handlers.UserHandlers{Accounts: accountsSvc, Issuer: issuer},
		Stores:    &handlers.StoreHandlers{Stores: storeSvc},
		Products:  &handlers.ProductHandlers{Products: productSvc},
		Brands:    &handlers.BrandHandlers{Brands: brandSvc},
		Addresses: &handlers.AddressHandlers{Addresses: addressSvc},
		Health:    &handlers.HealthHandlers{Repo: repo, Cache: cc},
		Metrics:   metricsHandler,
	})

	log.Info("starting server",
		logger.String("addr", cfg.Server.Addr),
		logger.String("env", cfg.App.Env),
		logger.String("cache", cfg.Cache.Kind),
	)
	return httpx.Serve(cfg.Server.Addr, h, cfg.ShutdownTimeoutDuration())
}

// runMigrate aplica *_up.sql en orden ascendente o *_down.sql en orden
// inverso; steps limita cuántas.
func runMigrate(configPath, dir, action string, steps int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required (env DOTCART_DSN)")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool: %w", err)
	}
	defer pool.Close()

	var suffix string
	switch action {
	case "up":
		suffix = "_up.sql"
	case "down":
		suffix = "_down.sql"
	default:
		return fmt.Errorf("unknown action %q, use: up | down [steps]", action)
	}

	files, err := listSQL(dir, suffix)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("no migrations found, nothing to do")
		return nil
	}
	sort.Strings(files)
	if action == "down" {
		reverseInPlace(files)
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}
		fmt.Println("applied", f)
	}
	return nil
}

func listSQL(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

func reverseInPlace(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}
