package app

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/finpulse/internal/config"
	"github.com/klokku/finpulse/internal/utils"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/asset"
	"github.com/klokku/finpulse/pkg/category_budget"
	"github.com/klokku/finpulse/pkg/comparison"
	"github.com/klokku/finpulse/pkg/contribution"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/market_rate"
	"github.com/klokku/finpulse/pkg/projection"
	"github.com/klokku/finpulse/pkg/score"
	"github.com/klokku/finpulse/pkg/skip"
	"github.com/klokku/finpulse/pkg/summary"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Reader ledger.Reader

	AggregateService aggregate.Service

	SummaryService summary.Service
	SummaryHandler *summary.Handler

	ScoreService score.Service
	ScoreHandler *score.Handler

	ProjectionService projection.Service
	ProjectionHandler *projection.Handler

	ComparisonService comparison.Service
	ComparisonHandler *comparison.Handler

	ContributionService contribution.Service
	ContributionHandler *contribution.Handler

	SkipRepo     skip.Repository
	SkipRegistry skip.Registry
	SkipHandler  *skip.Handler

	CategoryBudgetRepo    category_budget.Repository
	CategoryBudgetService category_budget.Service
	CategoryBudgetHandler *category_budget.Handler

	MarketRateCache    market_rate.Cache
	MarketRateProvider market_rate.Provider

	AssetRepo    asset.Repository
	AssetService asset.Service
	AssetHandler *asset.Handler

	Clock utils.Clock

	closers []func() error
}

// BuildDependencies constructs all services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}
	deps.Clock = &utils.SystemClock{}

	deps.Reader = ledger.NewRepository(db)
	deps.AggregateService = aggregate.NewService(deps.Reader)

	deps.SummaryService = summary.NewService(deps.AggregateService)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService)

	deps.ScoreService = score.NewService(deps.AggregateService, deps.Reader, score.Config{
		EmergencyMonths:      cfg.Finance.EmergencyMonths,
		SavingsAssetCategory: cfg.Finance.SavingsAssetCategory,
	}, cfg.Finance.TrailingMonths)
	deps.ScoreHandler = score.NewHandler(deps.ScoreService)

	deps.ProjectionService = projection.NewService(deps.AggregateService, deps.Clock, cfg.Finance.TrailingMonths)
	deps.ProjectionHandler = projection.NewHandler(deps.ProjectionService, cfg.Finance.ProjectionMonths)

	deps.ComparisonService = comparison.NewService(deps.AggregateService)
	deps.ComparisonHandler = comparison.NewHandler(deps.ComparisonService)

	deps.ContributionService = contribution.NewService(deps.Reader, deps.Clock)
	deps.ContributionHandler = contribution.NewHandler(deps.ContributionService)

	deps.SkipRepo = skip.NewRepository(db)
	deps.SkipRegistry = skip.NewRegistry(deps.SkipRepo)
	deps.SkipHandler = skip.NewHandler(deps.SkipRegistry)

	deps.CategoryBudgetRepo = category_budget.NewRepository(db)
	deps.CategoryBudgetService = category_budget.NewService(deps.CategoryBudgetRepo, deps.Reader)
	deps.CategoryBudgetHandler = category_budget.NewHandler(deps.CategoryBudgetService)

	if cfg.Redis.Enabled {
		redisCache := market_rate.NewRedisCache(cfg.Redis.Addr, cfg.Redis.DB, cfg.MarketRate.TTL)
		deps.closers = append(deps.closers, redisCache.Close)
		deps.MarketRateCache = redisCache
		log.Infof("Market rate cache backed by redis at %s", cfg.Redis.Addr)
	} else {
		deps.MarketRateCache = market_rate.NewMemoryCache(cfg.MarketRate.TTL, deps.Clock)
	}
	rateClient := market_rate.NewClient(&http.Client{Timeout: cfg.MarketRate.Timeout}, cfg.MarketRate.URL)
	deps.MarketRateProvider = market_rate.NewCachedProvider(rateClient, deps.MarketRateCache, cfg.MarketRate.Series)

	deps.AssetRepo = asset.NewRepository(db)
	deps.AssetService = asset.NewService(deps.AssetRepo, deps.Reader, deps.MarketRateProvider, deps.Clock, cfg.MarketRate.YieldCategories)
	deps.AssetHandler = asset.NewHandler(deps.AssetService)

	return deps
}

// Close releases resources opened while building dependencies.
func (d *Dependencies) Close() {
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			log.Errorf("failed to close dependency: %v", err)
		}
	}
}
