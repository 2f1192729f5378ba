// Package feed orchestrates message submission: it appends a pending
// record immediately so the dashboard reflects the analyzing state, then
// classifies in the background and resolves the record by id when the call
// completes. Submissions never block on the network and may resolve out of
// submission order.
package feed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"sentinel-dashboard/internal/classifier"
	"sentinel-dashboard/internal/metrics"
	"sentinel-dashboard/internal/models"
	"sentinel-dashboard/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyText is returned when a submission is blank after trimming.
var ErrEmptyText = errors.New("feed: empty message text")

// DefaultAuthor labels manual submissions with no author given.
const DefaultAuthor = "User_Sim"

// DefaultStaggerDelay is the pause between batch submission initiations.
const DefaultStaggerDelay = 500 * time.Millisecond

// SampleMessages is the fixed batch used by the stream simulation.
var SampleMessages = []string{
	"This server is absolutely amazing, I love the community here!",
	"Does anyone know how to fix the Python indentation error in line 45?",
	"You are all stupid and this game sucks.",
	"Just had lunch, thinking about streaming later.",
	"The mods here are useless, banning people for no reason.",
	"Can we get a dedicated channel for memes?",
}

// Controller drives the submission pipeline. It is the only component
// that performs the pending→resolved write.
type Controller struct {
	classifier classifier.Classifier
	store      *store.Store
	logger     *zap.Logger
	stagger    time.Duration

	inflight sync.WaitGroup
}

// New creates a feed controller. A stagger of 0 selects the default batch
// delay; pass a negative value to disable it.
func New(cls classifier.Classifier, st *store.Store, stagger time.Duration, logger *zap.Logger) *Controller {
	if stagger == 0 {
		stagger = DefaultStaggerDelay
	}
	if stagger < 0 {
		stagger = 0
	}
	return &Controller{
		classifier: cls,
		store:      st,
		logger:     logger,
		stagger:    stagger,
	}
}

// Submit appends a pending record for the given text and starts its
// classification in the background. Blank text is rejected without
// creating a record.
func (c *Controller) Submit(author, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return models.Message{}, ErrEmptyText
	}
	if author == "" {
		author = DefaultAuthor
	}

	msg := models.Message{
		ID:        uuid.New().String(),
		Author:    author,
		Content:   text,
		Timestamp: time.Now(),
		State:     models.StatePending,
	}

	if err := c.store.Append(msg); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return models.Message{}, err
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	metrics.PendingAnalyses.Inc()

	c.inflight.Add(1)
	go c.analyze(msg.ID, text)

	c.logger.Info("Message submitted",
		zap.String("id", msg.ID),
		zap.String("author", author))

	return msg, nil
}

// analyze runs one classification and resolves the record by id. Every
// path resolves: a provider error becomes the failed-safe fallback, never
// a stuck pending record.
func (c *Controller) analyze(id, text string) {
	defer c.inflight.Done()
	defer metrics.PendingAnalyses.Dec()

	start := time.Now()
	result, err := c.classifier.Classify(context.Background(), text)
	metrics.ClassifyLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Warn("Classification failed, resolving failed-safe",
			zap.String("id", id),
			zap.Error(err))
		c.store.Resolve(id, nil)
		metrics.ResolutionsTotal.WithLabelValues("failed_safe").Inc()
		return
	}

	result = classifier.Normalize(result)
	c.store.Resolve(id, &result)
	metrics.ResolutionsTotal.WithLabelValues("analyzed").Inc()
	if result.IsToxic {
		metrics.ToxicMessagesTotal.Inc()
	}

	c.logger.Info("Message analyzed",
		zap.String("id", id),
		zap.Float64("sentiment", result.SentimentScore),
		zap.String("topic", result.PrimaryTopic),
		zap.Bool("toxic", result.IsToxic))
}

// RunBatch submits the given sample texts with a fixed stagger between
// initiations, emulating a live ingestion stream. Classifications proceed
// independently; the batch only waits on the stagger, never on results.
// Returns the number of messages submitted.
func (c *Controller) RunBatch(ctx context.Context, samples []string) int {
	if len(samples) == 0 {
		samples = SampleMessages
	}

	submitted := 0
	for i, text := range samples {
		author := simAuthor()
		if _, err := c.Submit(author, text); err != nil {
			c.logger.Warn("Batch submission skipped", zap.Error(err))
			continue
		}
		submitted++

		if i == len(samples)-1 {
			break
		}
		select {
		case <-ctx.Done():
			c.logger.Info("Batch simulation cancelled",
				zap.Int("submitted", submitted))
			return submitted
		case <-time.After(c.stagger):
		}
	}

	c.logger.Info("Batch simulation submitted", zap.Int("count", submitted))
	return submitted
}

// Wait blocks until every in-flight classification has resolved. Used for
// graceful shutdown and tests.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func simAuthor() string {
	return fmt.Sprintf("SimUser_%d", rand.Intn(100))
}
