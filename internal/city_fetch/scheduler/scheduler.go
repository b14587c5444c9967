package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/helper"
	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/spider"
)

// Worker runs every enabled source on a fixed daily schedule. Each source
// run is tried synchronously once; failures move to an async retry loop so
// one slow portal never blocks the others.
type Worker struct {
	Log      *zap.Logger
	Stores   *helper.Stores
	Client   *resty.Client
	Location *time.Location

	retryWg sync.WaitGroup
}

// Crawl anchors, local hours. Municipal calendars change a handful of
// times per day at most.
var crawlAnchors = []int{0, 6, 12, 18}

func nextAnchor(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	for _, h := range crawlAnchors {
		t := time.Date(local.Year(), local.Month(), local.Day(), h, 0, 0, 0, loc)
		if !t.Before(local) {
			return t.UTC()
		}
	}
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return next.UTC()
}

func (w *Worker) Run(ctx context.Context) {
	// Crawl once at startup, then sleep to each anchor.
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("Waiting for retry goroutines to complete...")
			w.retryWg.Wait()
			return
		default:
			next := nextAnchor(time.Now(), w.Location)
			sleep := time.Until(next)
			if sleep < 0 {
				sleep = 0
			}
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				w.Log.Info("Waiting for retry goroutines to complete...")
				w.retryWg.Wait()
				return
			case <-timer.C:
				w.runOnce(ctx)
			}
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	sources, err := w.Stores.EnabledSources(ctx)
	if err != nil {
		w.Log.Error("Failed to load sources", zap.Error(err))
		return
	}

	for _, src := range sources {
		sp, err := spider.NewFromConfig(src, w.Client, w.Log)
		if err != nil {
			// Configuration mistakes are not retryable; the source sits
			// out until its config is fixed.
			w.Log.Error("Invalid source config, skipping",
				zap.String("source", src.Name),
				zap.String("agency", src.Agency),
				zap.Error(err),
			)
			continue
		}
		w.crawlWithAsyncRetry(ctx, src, sp)
	}
}

// calculateRetryDelay computes the retry delay: 15s * 2^(n-1).
func (w *Worker) calculateRetryDelay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 15 * time.Second
	}
	delay := 15 * time.Second
	for i := 1; i < retryCount; i++ {
		delay *= 2
	}
	return delay
}

func (w *Worker) crawlWithAsyncRetry(ctx context.Context, src model.SourceInfo, sp spider.Spider) {
	if w.crawlSource(ctx, src, sp, 1) {
		return
	}

	w.retryWg.Add(1)
	go func() {
		defer w.retryWg.Done()
		w.asyncRetryLoop(ctx, src, sp)
	}()
}

func (w *Worker) asyncRetryLoop(ctx context.Context, src model.SourceInfo, sp spider.Spider) {
	const maxRetries = 5

	for attempt := 2; attempt <= maxRetries; attempt++ {
		retryDelay := w.calculateRetryDelay(attempt - 1)

		w.Log.Info("Async retry scheduled",
			zap.String("source", src.Name),
			zap.String("agency", src.Agency),
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("delay", retryDelay),
		)

		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.Log.Info("Context cancelled, stopping async retries",
				zap.String("source", src.Name),
				zap.Int("attempt", attempt),
			)
			return
		case <-timer.C:
			if w.crawlSource(ctx, src, sp, attempt) {
				w.Log.Info("Async retry succeeded",
					zap.String("source", src.Name),
					zap.Int("attempt", attempt),
				)
				return
			}
		}
	}

	w.Log.Error("Async retry max attempts exceeded, giving up",
		zap.String("source", src.Name),
		zap.String("agency", src.Agency),
		zap.Int("maxRetries", maxRetries),
	)
}

// crawlSource runs one spider and upserts everything it emits. A crawl
// error is retryable; individual upsert failures are logged and skipped.
func (w *Worker) crawlSource(ctx context.Context, src model.SourceInfo, sp spider.Spider, attempt int) bool {
	emitted := 0
	stored := 0

	err := sp.Crawl(ctx, func(m model.Meeting) {
		emitted++
		if err := w.Stores.UpsertMeeting(ctx, m); err != nil {
			w.Log.Error("Failed to upsert meeting",
				zap.String("source", src.Name),
				zap.String("meeting_id", m.ID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return
		}
		stored++
	})
	if err != nil {
		w.Log.Error("Crawl failed",
			zap.String("source", src.Name),
			zap.String("agency", src.Agency),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return false
	}

	w.Log.Info("Crawl completed",
		zap.String("source", src.Name),
		zap.String("agency", src.Agency),
		zap.Int("attempt", attempt),
		zap.Int("emitted", emitted),
		zap.Int("stored", stored),
	)
	return true
}
