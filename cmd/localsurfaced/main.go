package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lanikai/localsurface"
	"github.com/lanikai/localsurface/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// Populated via -ldflags="-X ...".
var GitRevisionId string

var log = logging.DefaultLogger.WithTag("localsurfaced")

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		version()
		os.Exit(0)
	}
	if flagRate <= 0 || flagPoll <= 0 || flagStats <= 0 {
		log.Fatalf("--rate, --poll and --stats must be positive")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if flagDuration > 0 {
		ctx, cancel = context.WithTimeout(ctx, flagDuration)
		defer cancel()
	}

	registry := localsurface.NewRegistry()
	gatherer := prometheus.NewRegistry()
	gatherer.MustRegister(localsurface.NewCollector(registry))

	g, ctx := errgroup.WithContext(ctx)
	for _, channel := range flagChannels {
		config := localsurface.Config{
			Channel:      channel,
			JitterBuffer: flagJitterBuffer,
			Registry:     registry,
		}
		g.Go(func() error { return consume(ctx, config) })
		g.Go(func() error { return produce(ctx, config) })
	}
	g.Go(func() error {
		reportStats(ctx, registry, gatherer)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("%v", err)
	}
	if err := registry.Close(); err != nil {
		log.Warn("%v", err)
	}
}

func produce(ctx context.Context, config localsurface.Config) error {
	sink := localsurface.NewSink(config)
	if err := sink.Start(); err != nil {
		return err
	}
	defer sink.Stop()

	if flagInput != "" {
		return produceFile(ctx, sink, flagInput)
	}
	return produceSynthetic(ctx, sink, flagRate)
}

func consume(ctx context.Context, config localsurface.Config) error {
	src := localsurface.NewSource(config)
	if err := src.Start(); err != nil {
		return err
	}
	defer src.Stop()

	var frames, bytes uint64
	last := localsurface.TimeNone
	pump := localsurface.NewPump(src, flagPoll, func(b *localsurface.Buffer) {
		defer b.Release()
		atomic.AddUint64(&frames, 1)
		atomic.AddUint64(&bytes, uint64(b.Size()))
		if b.HasTimestamp() {
			if last != localsurface.TimeNone && b.Timestamp < last {
				log.Warn("%s: timestamp went backwards, %v after %v", config.Channel, b.Timestamp, last)
			}
			last = b.Timestamp
		}
	})

	pump.Start()
	<-ctx.Done()
	pump.Stop()

	log.Info("%s: consumed %d buffers, %d bytes, format %v",
		config.Channel, atomic.LoadUint64(&frames), atomic.LoadUint64(&bytes), src.Format())
	return nil
}

func reportStats(ctx context.Context, registry *localsurface.Registry, gatherer prometheus.Gatherer) {
	ticker := time.NewTicker(flagStats)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			writeMetrics(gatherer)
			return
		case <-ticker.C:
		}

		for _, st := range registry.Stats() {
			log.Info("%s: %v, level %d/%d, pushed %d, popped %d, overflows %d, discarded %d",
				st.Name, st.State, st.Level, st.Limit, st.Pushed, st.Popped, st.Overflows, st.Discarded)
		}
		writeMetrics(gatherer)
	}
}

func writeMetrics(gatherer prometheus.Gatherer) {
	if flagMetricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(flagMetricsFile, gatherer); err != nil {
		log.Error("Failed to write metrics: %v", err)
	}
}
