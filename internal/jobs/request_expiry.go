// File: internal/jobs/request_expiry.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"bloodlink_backend/internal/config"
	"bloodlink_backend/internal/request"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RequestExpiryJob periodically cancels active donation requests that have
// gone stale without a donor response.
type RequestExpiryJob struct {
	requestService request.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewRequestExpiryJob creates a new RequestExpiryJob.
func NewRequestExpiryJob(
	requestService request.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *RequestExpiryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &RequestExpiryJob{
		requestService: requestService,
		logger:         logger.Named("RequestExpiryJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *RequestExpiryJob) SetupAndStart() error {
	jobSpec := j.cfg.RequestExpiryJobSchedule // e.g. "@daily", "0 1 * * *"
	if jobSpec == "" {
		j.logger.Warn("Request expiry job schedule not defined (REQUEST_EXPIRY_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule request expiry job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Request expiry job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *RequestExpiryJob) runJob() {
	j.logger.Info("Starting request expiry job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cancelledCount, err := j.requestService.ExpireStaleRequests(ctx)
	if err != nil {
		j.logger.Error("Request expiry job run failed", zap.Error(err))
	} else {
		j.logger.Info("Request expiry job run completed", zap.Int("requests_cancelled", cancelledCount))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *RequestExpiryJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping request expiry job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Request expiry job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Request expiry job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
