package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	partnerapp "github.com/libreria/backend/internal/application/partner"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	file   string
	fake   int
	seed   uint64
	tenant string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load a YAML fixture and optional fake products into the database",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "fixture file (YAML)")
	cmd.Flags().IntVar(&opts.fake, "fake", 0, "number of generated products to add")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "faker seed, 0 for random")
	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "tenant id, overrides the fixture and the configured default")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	fixture := &Fixture{}
	if opts.file != "" {
		if fixture, err = LoadFixture(opts.file); err != nil {
			return err
		}
	}
	if opts.fake > 0 {
		fixture.Products = append(fixture.Products, FakeProducts(gofakeit.New(opts.seed), opts.fake)...)
	}

	tenantID, err := resolveTenant(opts.tenant, fixture.Tenant, cfg.HTTP.DefaultTenantID)
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithZapLogger(log, cfg.Log.Level, cfg.Database.SlowQuery),
	)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			return err
		}
	}

	locker := cache.NewMemoryKeyedLocker()
	s := &seeder{
		products:  catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), locker),
		suppliers: partnerapp.NewSupplierService(persistence.NewGormSupplierRepository(db.DB), locker),
		log:       log,
	}
	return s.apply(logger.WithContext(ctx, log), tenantID, fixture)
}

// resolveTenant picks the first non-empty candidate
func resolveTenant(candidates ...string) (uuid.UUID, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		id, err := uuid.Parse(c)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid tenant id %q: %w", c, err)
		}
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("no tenant id configured")
}

type seeder struct {
	products  *catalogapp.ProductService
	suppliers *partnerapp.SupplierService
	log       *zap.Logger
}

func (s *seeder) apply(ctx context.Context, tenantID uuid.UUID, f *Fixture) error {
	for i, sf := range f.Suppliers {
		sup, err := s.suppliers.Create(ctx, tenantID, sf.Request())
		if err != nil {
			return fmt.Errorf("supplier %d (%s): %w", i, sf.Name, err)
		}
		s.log.Debug("Seeded supplier", zap.String("id", sup.ID.String()), zap.String("name", sup.Name))
	}

	for i, pf := range f.Products {
		req, err := pf.Request()
		if err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
		p, err := s.products.Create(ctx, tenantID, catalog.ProductKind(pf.Kind), req)
		if err != nil {
			return fmt.Errorf("product %d (%s): %w", i, pf.Kind, err)
		}
		s.log.Debug("Seeded product", zap.String("id", p.ID.String()), zap.String("kind", p.Kind))
	}

	s.log.Info("Seed complete",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("suppliers", len(f.Suppliers)),
		zap.Int("products", len(f.Products)),
	)
	return nil
}
