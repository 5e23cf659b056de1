package gbfs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nats-io/nats.go"
)

// statusDocument is the wire shape of a GBFS station_status document.
type statusDocument struct {
	LastUpdated int64 `json:"last_updated"`
	Data        struct {
		Stations []StationStatus `json:"stations"`
	} `json:"data"`
}

// DecodeStatus parses a station_status JSON document into a snapshot.
func DecodeStatus(data []byte) (*Snapshot, error) {
	var doc statusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode station_status: %w", err)
	}
	captured := time.Now()
	if doc.LastUpdated != 0 {
		captured = time.Unix(doc.LastUpdated, 0)
	}
	return NewSnapshot(captured, doc.Data.Stations), nil
}

// SourceFunc fetches a fresh snapshot. Fetching happens entirely off the
// traversal read path.
type SourceFunc func(ctx context.Context) (*Snapshot, error)

// FileSource reads station_status JSON from a local path on every refresh.
func FileSource(path string) SourceFunc {
	return func(ctx context.Context) (*Snapshot, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read station_status %q: %w", path, err)
		}
		return DecodeStatus(data)
	}
}

// Refresher periodically pulls a new snapshot from its source and publishes
// it to the cache. It owns the only write path into the cache.
type Refresher struct {
	cache     *Cache
	source    SourceFunc
	interval  time.Duration
	onPublish func(*Snapshot)
}

func NewRefresher(cache *Cache, source SourceFunc, interval time.Duration) *Refresher {
	return &Refresher{cache: cache, source: source, interval: interval}
}

// OnPublish registers a hook invoked after each publication, used for
// metrics. Must be set before Run.
func (r *Refresher) OnPublish(fn func(*Snapshot)) { r.onPublish = fn }

// Run refreshes until the context is cancelled. A failed fetch keeps the
// previous snapshot visible; staleness handling is the models' job.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := r.source(ctx)
			if err != nil {
				log.Printf("gbfs refresh failed: %v", err)
				continue
			}
			r.publish(snap)
		}
	}
}

func (r *Refresher) publish(snap *Snapshot) {
	r.cache.Publish(snap)
	if r.onPublish != nil {
		r.onPublish(snap)
	}
}

// SubscribeNATS feeds the cache from live station_status messages on a NATS
// subject. Each message is a full station_status document and replaces the
// current snapshot. Returns a drain function for shutdown.
func (r *Refresher) SubscribeNATS(url, subject string) (func(), error) {
	nc, err := nats.Connect(url,
		nats.Name("multimodal-traversal"),
		nats.DisconnectHandler(func(_ *nats.Conn) { log.Printf("nats disconnected") }),
		nats.ReconnectHandler(func(_ *nats.Conn) { log.Printf("nats reconnected") }),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %q: %w", url, err)
	}
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		snap, err := DecodeStatus(msg.Data)
		if err != nil {
			log.Printf("gbfs nats message dropped: %v", err)
			return
		}
		r.publish(snap)
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribe %q: %w", subject, err)
	}
	return func() {
		_ = sub.Drain()
		nc.Close()
	}, nil
}
