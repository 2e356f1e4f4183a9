package main

import (
	"context"
	"errors"
	"log"

	"idleverse/internal/adapter/content/staticfiles"
	"idleverse/internal/adapter/content/yamldir"
	httpadapter "idleverse/internal/adapter/http"
	metricsinmem "idleverse/internal/adapter/metrics/inmemory"
	natsnotify "idleverse/internal/adapter/notify/nats"
	nopnotify "idleverse/internal/adapter/notify/nop"
	gormrepo "idleverse/internal/adapter/repo/gorm"
	memrepo "idleverse/internal/adapter/repo/memory"
	basicrules "idleverse/internal/adapter/rules/basic"
	"idleverse/internal/app/activity"
	"idleverse/internal/app/advance"
	"idleverse/internal/app/changelog"
	"idleverse/internal/app/forecast"
	"idleverse/internal/app/packfiles"
	"idleverse/internal/app/ports"
	"idleverse/internal/app/status"
	"idleverse/internal/config"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	registry, err := yamldir.Load(cfg.ContentDir)
	if err != nil {
		log.Fatalf("load content: %v", err)
	}

	snapshots, execs, changeLog, txManager := mustBuildRepos(cfg)
	seedDemoPlayer(cfg, snapshots)
	notifier := mustBuildNotifier(cfg)
	kpiRecorder := metricsinmem.NewRecorder()

	rules := basicrules.New(registry)
	engine := &sim.Engine{Content: registry, Modifiers: rules, Combat: rules}

	h := httpadapter.Handler{
		AdvanceUC: advance.UseCase{
			TxManager: txManager,
			Snapshots: snapshots,
			Execs:     execs,
			ChangeLog: changeLog,
			Notifier:  notifier,
			Metrics:   kpiRecorder,
			Engine:    engine,
			MaxTicks:  cfg.MaxAdvanceTicks,
		},
		ForecastUC:  forecast.UseCase{Snapshots: snapshots, Engine: engine, MaxTicks: cfg.MaxAdvanceTicks},
		ActivityUC:  activity.UseCase{TxManager: txManager, Snapshots: snapshots, Content: registry},
		StatusUC:    status.UseCase{Snapshots: snapshots, Engine: engine},
		ChangeLogUC: changelog.UseCase{ChangeLog: changeLog},
		PackUC:      packfiles.UseCase{Provider: staticfiles.Provider{Root: cfg.ContentDir}},
		KPI:         kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Printf("idleverse server listening on %s (content: %s)", cfg.ListenAddr, cfg.ContentDir)
	s.Spin()
}

func mustBuildRepos(cfg config.Config) (ports.SnapshotRepository, ports.AdvanceExecutionRepository, ports.ChangeLogRepository, ports.TxManager) {
	if cfg.DatabaseDSN == "" {
		log.Println("IDLEVERSE_DB_DSN not set, running on in-memory repositories")
		store := memrepo.NewStore()
		return memrepo.NewSnapshotRepo(store), memrepo.NewAdvanceExecutionRepo(store), memrepo.NewChangeLogRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewSnapshotRepo(db), gormrepo.NewAdvanceExecutionRepo(db), gormrepo.NewChangeLogRepo(db), gormrepo.NewTxManager(db)
}

// seedDemoPlayer makes a fresh store playable without a registration
// step. An existing snapshot is left alone.
func seedDemoPlayer(cfg config.Config, snapshots ports.SnapshotRepository) {
	if cfg.DemoPlayerID == "" {
		return
	}
	ctx := context.Background()
	_, err := snapshots.GetByPlayerID(ctx, cfg.DemoPlayerID)
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load demo player: %v", err)
	}
	if err := snapshots.Create(ctx, game.NewPlayerState(cfg.DemoPlayerID, cfg.InventoryCapacity)); err != nil {
		log.Fatalf("seed demo player: %v", err)
	}
	log.Printf("seeded demo player %q", cfg.DemoPlayerID)
}

func mustBuildNotifier(cfg config.Config) ports.ChangeNotifier {
	if cfg.NATSURL == "" {
		return nopnotify.Notifier{}
	}
	n, err := natsnotify.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatalf("connect nats: %v", err)
	}
	return n
}
