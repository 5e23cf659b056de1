package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	traversal "github.com/theoremus-urban-solutions/multimodal-traversal"
	"github.com/theoremus-urban-solutions/multimodal-traversal/config"
	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: ./config.yml)")
	metricsAddr := flag.String("metricsAddr", ":9090", "address for the /metrics endpoint")
	flag.Parse()

	traversal.InitLogging()
	// .env may carry overrides like CONFIG_PATH; missing file is fine
	_ = godotenv.Load()
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	svc, err := traversal.Build(cfg, traversal.DefaultRegistry())
	if err != nil {
		log.Fatalf("build traversal service: %v", err)
	}

	metrics := traversal.NewMetrics()
	svc.SetMetrics(metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cache := svc.AvailabilityCache(); cache != nil && cfg.Gbfs != nil {
		interval := time.Duration(cfg.Gbfs.RefreshIntervalSec) * time.Second
		if interval == 0 {
			interval = time.Minute
		}
		refresher := gbfs.NewRefresher(cache, gbfs.FileSource(cfg.Gbfs.StatusSource), interval)
		refresher.OnPublish(metrics.ObservePublish)
		if cfg.Gbfs.NATSURL != "" && cfg.Gbfs.Subject != "" {
			drain, err := refresher.SubscribeNATS(cfg.Gbfs.NATSURL, cfg.Gbfs.Subject)
			if err != nil {
				log.Fatalf("gbfs nats: %v", err)
			}
			defer drain()
			log.Printf("gbfs updates from nats subject %q", cfg.Gbfs.Subject)
		}
		go refresher.Run(ctx)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	srv := &http.Server{Addr: *metricsAddr, Handler: mux}
	go func() {
		log.Printf("metrics on %s/metrics", *metricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Printf("shutdown complete")
}
