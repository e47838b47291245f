package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"brandwatch/internal/adapters/searchapi"
	"brandwatch/internal/adapters/visionhttp"
	"brandwatch/internal/brand"
	"brandwatch/internal/core/score"
	"brandwatch/internal/modkit"
	"brandwatch/internal/modkit/module"
	"brandwatch/internal/platform/config"
	"brandwatch/internal/platform/logger"
	"brandwatch/internal/platform/store"

	explicitdom "brandwatch/internal/services/explicit/domain"
	explicitmod "brandwatch/internal/services/explicit/module"
	hitsmod "brandwatch/internal/services/hits/module"
	imagesdom "brandwatch/internal/services/images/domain"
	imagesmod "brandwatch/internal/services/images/module"
	notifymod "brandwatch/internal/services/notify/module"
	pipedom "brandwatch/internal/services/pipeline/domain"
	pipemod "brandwatch/internal/services/pipeline/module"
	wmmod "brandwatch/internal/services/watermark/module"
)

func main() {
	// .env convenience everywhere except production
	if os.Getenv("BW_ENV") != "production" {
		_ = godotenv.Load()
	}

	root := config.New()
	l := logger.Get()

	var (
		brandPath = flag.String("brand", "brand.yaml", "path to the brand config yaml")
		window    = flag.Int("window", 0, "override listen window in minutes")
		dryRun    = flag.Bool("dry-run", false, "detect and log but do not archive or notify")
	)
	flag.Parse()

	bc, err := brand.Load(*brandPath)
	if err != nil {
		l.Fatal().Err(err).Str("path", *brandPath).Msg("brand config rejected")
	}

	stateBackend := root.Prefix("STATE_").MayEnum("BACKEND", "file", "pg", "file")
	archive := root.Prefix("ARCHIVE_").MayBool("ENABLED", false)

	stCfg := store.Config{AppName: "brandwatch-listen"}
	if stateBackend == "pg" {
		pgCfg := root.Prefix("SERVICE_PGSQL_")
		stCfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		}
	}
	if archive {
		chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
		stCfg.CH = store.CHConfig{
			Enabled: true,
			DSN:     chCfg.MustString("DSN"),
		}
	}

	ctx := context.Background()
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		PG:  st.PG,
		CH:  st.CH,
	}

	saCfg := root.Prefix("SEARCHAPI_")
	search := searchapi.NewClient(searchapi.Options{
		BaseURL:     saCfg.MayString("BASE_URL", ""),
		APIKey:      saCfg.MustString("API_KEY"),
		Timeout:     saCfg.MayDuration("TIMEOUT", 15*time.Second),
		MaxRetries:  saCfg.MayInt("MAX_RETRIES", 5),
		MinInterval: saCfg.MayDuration("MIN_INTERVAL", 6*time.Second),
	})

	// Build dependency modules first
	wm := wmmod.New(deps)
	wmPorts := module.MustPortsOf[wmmod.Ports](wm)

	ex := explicitmod.New(deps, bc, explicitmod.Options{},
		modkit.WithPorts(explicitdom.Ports{
			Search: search,
			Marks:  wmPorts.Store,
		}),
	)
	module.Register(wm.Name(), wm.Ports())
	module.Register(ex.Name(), ex.Ports())

	var imageRunner pipedom.RunnerPort
	if bc.Image.Enabled {
		viCfg := root.Prefix("VISION_")
		vision := visionhttp.NewClient(visionhttp.Options{
			Endpoint: viCfg.MustString("ENDPOINT"),
			APIKey:   viCfg.MayString("API_KEY", ""),
			Timeout:  viCfg.MayDuration("TIMEOUT", 30*time.Second),
		})
		im := imagesmod.New(deps, bc, imagesmod.Options{},
			modkit.WithPorts(imagesdom.Ports{
				Search: search,
				Vision: vision,
				Marks:  wmPorts.Store,
			}),
		)
		module.Register(im.Name(), im.Ports())
		imageRunner = module.MustPortsOf[imagesmod.Ports](im).Runner
	}

	pipe := pipemod.New(deps, pipemod.Options{WindowMinutes: *window},
		modkit.WithPorts(pipedom.Ports{
			Explicit: module.MustPortsOf[explicitmod.Ports](ex).Runner,
			Images:   imageRunner,
		}),
	)
	hm := hitsmod.New(deps, bc)
	nm := notifymod.New(deps, bc, notifymod.Options{})
	module.Register(pipe.Name(), pipe.Ports())
	module.Register(hm.Name(), hm.Ports())
	module.Register(nm.Name(), nm.Ports())

	// One listening cycle per invocation; schedulers own the cadence
	runID, detections, err := module.MustPortsOf[pipemod.Ports](pipe).Orchestrator.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).Str("run_id", runID).Msg("listening cycle failed")
	}

	hitsSvc := module.MustPortsOf[hitsmod.Ports](hm).Hits
	hits := hitsSvc.FromDetections(detections, runID, time.Now())

	if !*dryRun {
		// notify first so delivery state lands in the archive
		hits = module.MustPortsOf[notifymod.Ports](nm).Notifier.Notify(ctx, hits)
		if err := hitsSvc.Archive(ctx, hits); err != nil {
			l.Fatal().Err(err).Str("run_id", runID).Msg("archiving hits failed")
		}
	}

	var candidates, notified, sinkErrs int
	for _, h := range hits {
		if h.Decision != score.DecisionIgnore {
			candidates++
		}
		if h.NotifiedAt != nil {
			notified++
		}
		sinkErrs += len(h.NotifyErrors)
	}
	l.Info().
		Str("run_id", runID).
		Int("processed", len(detections)).
		Int("candidates", candidates).
		Int("notified", notified).
		Int("sink_errors", sinkErrs).
		Bool("dry_run", *dryRun).
		Msg("listening cycle complete")
}
