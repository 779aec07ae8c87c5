// Package app は設定に従ってストア・ユースケース・HTTP ルーターを組み立てます。
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ogurasousui/funcionarios-api/internal/adapters/http/handler"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/http/router"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/repository/memory"
	"github.com/ogurasousui/funcionarios-api/internal/adapters/repository/postgres"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/history"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/report"
	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
	"github.com/ogurasousui/funcionarios-api/internal/platform/config"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
	"go.uber.org/zap"
)

// App は組み立て済みの HTTP ハンドラとストアの疎通確認です。
type App struct {
	Handler http.Handler
	Check   func(ctx context.Context) error
	Mode    string

	close func()
}

// repositories は 1 つのストア実装に属するリポジトリ群です。
type repositories struct {
	employees employee.Repository
	history   history.Repository
	positions position.Repository
	projects  project.Repository
	cities    city.Repository
	events    attendance.Repository
	vacations vacation.Repository
	reports   report.Repository
	settings  setting.Repository
	tx        shared.TransactionManager
	check     func(ctx context.Context) error
	close     func()
}

// New は cfg.Store.Driver に応じたストアで App を構築します。
// PostgreSQL に到達できず FallbackToMemory が有効な場合はデモストアを使います。
func New(ctx context.Context, cfg *config.Config, clock shared.Clock, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = shared.RealClock()
	}

	var (
		repos *repositories
		mode  = cfg.Store.Driver
		err   error
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		repos = newMemoryRepositories(clock)
		logger.Warn("using in-memory demo store; data is lost on restart",
			zap.Int("funcionarios", memory.DemoEmployeeCount))
	case config.StoreDriverPostgres:
		repos, err = newPostgresRepositories(ctx, cfg.Database)
		switch {
		case err == nil:
			logger.Info("connected to postgres")
		case cfg.Store.FallbackToMemory && errors.Is(err, apperror.ErrStorageUnavailable):
			logger.Warn("postgres unreachable; falling back to in-memory demo store", zap.Error(err))
			repos = newMemoryRepositories(clock)
			mode = config.StoreDriverMemory
		default:
			return nil, err
		}
	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.Store.Driver)
	}

	opts := router.Options{
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
		RateLimitRPS:     cfg.Server.RateLimit.RPS,
		RateLimitBurst:   cfg.Server.RateLimit.Burst,
	}
	if cfg.Telemetry.OTLPEndpoint != "" {
		opts.ServiceName = cfg.Telemetry.ServiceName
	}

	return &App{
		Handler: newRouter(repos, mode, clock, opts, logger),
		Check:   repos.check,
		Mode:    mode,
		close:   repos.close,
	}, nil
}

// Close はストアの接続を解放します。
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

func newMemoryRepositories(clock shared.Clock) *repositories {
	store := memory.NewStore()
	memory.Seed(store, clock.Now())

	return &repositories{
		employees: memory.NewEmployeeRepository(store),
		positions: memory.NewPositionRepository(store),
		projects:  memory.NewProjectRepository(store),
		cities:    memory.NewCityRepository(store),
		events:    memory.NewAttendanceRepository(store),
		vacations: memory.NewVacationRepository(store),
		reports:   memory.NewReportRepository(store),
		settings:  memory.NewSettingRepository(store),
		tx:        memory.NewTransactionManager(store),
		check:     store.Ping,
		close:     func() {},
	}
}

func newPostgresRepositories(ctx context.Context, cfg config.DatabaseConfig) (*repositories, error) {
	pool, err := pgdb.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &repositories{
		employees: postgres.NewEmployeeRepository(pool),
		history:   postgres.NewHistoryRepository(pool),
		positions: postgres.NewPositionRepository(pool),
		projects:  postgres.NewProjectRepository(pool),
		cities:    postgres.NewCityRepository(pool),
		events:    postgres.NewAttendanceRepository(pool),
		vacations: postgres.NewVacationRepository(pool),
		reports:   postgres.NewReportRepository(pool),
		settings:  postgres.NewSettingRepository(pool),
		tx:        pgdb.NewTransactionManager(pool),
		check: func(ctx context.Context) error {
			return pgdb.HealthCheck(ctx, pool)
		},
		close: pool.Close,
	}, nil
}

func newRouter(repos *repositories, mode string, clock shared.Clock, opts router.Options, logger *zap.Logger) http.Handler {
	employees := employee.NewService(repos.employees, repos.history, clock, repos.tx)
	positions := position.NewService(repos.positions, clock, repos.tx)
	projects := project.NewService(repos.projects, clock, repos.tx)
	cities := city.NewService(repos.cities, clock, repos.tx)
	events := attendance.NewService(repos.events, clock, repos.tx)
	vacations := vacation.NewService(repos.vacations, clock, repos.tx)
	reports := report.NewService(repos.reports, clock, repos.tx)
	settings := setting.NewService(repos.settings, repos.tx)

	return router.New(opts, logger,
		handler.NewHealthHandler(repos.check, mode, clock, logger),
		handler.NewEmployeeHandler(employees, logger),
		handler.NewCatalogHandler(positions, projects, cities, logger),
		handler.NewAttendanceHandler(events, logger),
		handler.NewVacationHandler(vacations, logger),
		handler.NewReportHandler(reports, settings, logger),
	)
}
