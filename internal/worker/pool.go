package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueEmail = "jobs:email"

// maxJobAttempts is how many times a job is retried before it lands in the
// dead letter queue.
const maxJobAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// JobHandler processes one dequeued job payload. A returned error triggers a
// retry; after maxJobAttempts the job moves to the DLQ.
type JobHandler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

// NotifyMaintenanceDue enqueues the due-maintenance notification mail. This
// satisfies the maintenance service's notifier dependency.
func (d *Dispatcher) NotifyMaintenanceDue(ctx context.Context, email, assetTag, title string, dueDate time.Time) error {
	return d.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: email,
		Subject: "Maintenance due: " + assetTag,
		Body: "Maintenance \"" + title + "\" for asset " + assetTag +
			" is due on " + dueDate.Format("2006-01-02") + ".",
	})
}

// NotifyCheckoutConfirmation enqueues the confirmation mail sent to the
// employee after a successful checkout. Satisfies the lifecycle service's
// notifier dependency.
func (d *Dispatcher) NotifyCheckoutConfirmation(ctx context.Context, email, employeeName string, assetTags []string, expectedReturn *time.Time) error {
	body := "Hi " + employeeName + ",\n\nThe following assets were checked out to you: " +
		strings.Join(assetTags, ", ") + "."
	if expectedReturn != nil {
		body += " Expected return date: " + expectedReturn.Format("2006-01-02") + "."
	}
	return d.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: email,
		Subject: "Assets checked out to you",
		Body:    body,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle. handlers maps job type
// to its processor.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]JobHandler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]JobHandler) {
	queues := []string{QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], handlers)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, handlers map[string]JobHandler) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	handler, ok := handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "no handler registered", job.Attempts)
		return
	}

	if err := handler(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxJobAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, merr := json.Marshal(job)
		if merr != nil {
			log.Error().Err(merr).Str("type", job.Type).Msg("failed to re-encode job for retry")
			return
		}
		if rerr := rdb.LPush(ctx, queue, encoded).Err(); rerr != nil {
			log.Error().Err(rerr).Str("type", job.Type).Msg("failed to requeue job")
			return
		}
		log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, requeued")
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
