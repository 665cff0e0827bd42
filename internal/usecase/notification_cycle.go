package usecase

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// Cycle scopes recorded on the cycles metric
const (
	scopeAll  = "all"
	scopeUser = "user"
)

// NotificationCycle diffs each user's booked flights against the stored
// watermarks and dispatches an update for every flight that changed.
//
// The watermark advances after every user regardless of delivery outcome, so
// a failed send is not retried by a later cycle.
type NotificationCycle struct {
	userRepo    repository.UserRepository
	flightRepo  repository.FlightRepository
	statusRepo  repository.FlightStatusRepository
	historyRepo repository.DeliveryHistoryRepository
	router      ChannelRouter
	composer    MessageComposer
	metrics     *metrics.Metrics
	logger      logger.Logger

	pruneWatermarks bool
}

// NewNotificationCycle creates a new notification cycle
func NewNotificationCycle(
	userRepo repository.UserRepository,
	flightRepo repository.FlightRepository,
	statusRepo repository.FlightStatusRepository,
	historyRepo repository.DeliveryHistoryRepository,
	router ChannelRouter,
	composer MessageComposer,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *NotificationCycle {
	return &NotificationCycle{
		userRepo:    userRepo,
		flightRepo:  flightRepo,
		statusRepo:  statusRepo,
		historyRepo: historyRepo,
		router:      router,
		composer:    composer,
		metrics:     metrics,
		logger:      logger,
	}
}

// WithWatermarkPrune enables removal of watermarks without a booking at the end of a full cycle
func (c *NotificationCycle) WithWatermarkPrune(enabled bool) *NotificationCycle {
	c.pruneWatermarks = enabled
	return c
}

// RunCycle processes every user and reports whether any notification was handed to a channel.
// A failure on one user is logged and the cycle moves on to the next.
func (c *NotificationCycle) RunCycle(ctx context.Context) (bool, error) {
	start := time.Now()
	c.metrics.CyclesRun.WithLabelValues(scopeAll).Inc()
	defer func() {
		c.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	users, err := c.userRepo.List(ctx)
	if err != nil {
		c.metrics.ErrorsCount.WithLabelValues("list_users").Inc()
		return false, fmt.Errorf("failed to list users: %w", err)
	}

	notifiedAny := false
	failed := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return notifiedAny, err
		}

		notified, err := c.processUser(ctx, user)
		if err != nil {
			failed++
			c.metrics.ErrorsCount.WithLabelValues("process_user").Inc()
			c.logger.Error("Failed to process user", "email", user.Email, "error", err)
			continue
		}
		notifiedAny = notifiedAny || notified
	}

	if c.pruneWatermarks {
		removed, err := c.statusRepo.DeleteOrphaned(ctx)
		if err != nil {
			c.metrics.ErrorsCount.WithLabelValues("prune_watermarks").Inc()
			c.logger.Error("Failed to prune watermarks", "error", err)
		} else if removed > 0 {
			c.logger.Info("Pruned orphaned watermarks", "count", removed)
		}
	}

	c.logger.Info("Notification cycle completed",
		"users", len(users),
		"failedUsers", failed,
		"notified", notifiedAny,
		"duration", time.Since(start).String())

	return notifiedAny, nil
}

// RunForUser runs the cycle for a single user and returns any store error
func (c *NotificationCycle) RunForUser(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	c.metrics.CyclesRun.WithLabelValues(scopeUser).Inc()
	defer func() {
		c.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	user, err := c.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}

	notified, err := c.processUser(ctx, user)
	if err != nil {
		c.metrics.ErrorsCount.WithLabelValues("process_user").Inc()
		return notified, err
	}
	return notified, nil
}

func (c *NotificationCycle) processUser(ctx context.Context, user *entity.User) (bool, error) {
	c.metrics.UsersProcessed.Inc()
	log := c.logger.With("email", user.Email)

	flights, err := c.flightRepo.FindByUserEmail(ctx, user.Email)
	if err != nil {
		return false, fmt.Errorf("failed to load flights: %w", err)
	}
	current := uniqueSnapshots(flights)

	previous, err := c.statusRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return false, fmt.Errorf("failed to load watermarks: %w", err)
	}
	seen := make(map[string]entity.FlightSnapshot, len(previous))
	for _, p := range previous {
		seen[p.FlightNumber] = p.FlightSnapshot
	}

	notified := false
	for _, snapshot := range current {
		if last, ok := seen[snapshot.FlightNumber]; ok && last.Equal(snapshot) {
			continue
		}
		if c.dispatch(ctx, log, user, snapshot) {
			notified = true
		}
	}

	if err := c.statusRepo.Upsert(ctx, user.Email, current); err != nil {
		return notified, fmt.Errorf("failed to store watermarks: %w", err)
	}

	log.Debug("User processed", "flights", len(current), "notified", notified)
	return notified, nil
}

// dispatch reports whether the notification was handed to a channel
func (c *NotificationCycle) dispatch(ctx context.Context, log logger.Logger, user *entity.User, snapshot entity.FlightSnapshot) bool {
	subject, body := c.composer.Compose(snapshot)
	preference := user.NotificationPreference

	record := &entity.DeliveryRecord{
		UserEmail:    user.Email,
		FlightNumber: snapshot.FlightNumber,
		Channel:      preference.String(),
		Message:      body,
	}

	sender := c.router.SenderFor(preference)
	if sender == nil {
		log.Debug("No channel for preference", "preference", preference.String(), "flightNumber", snapshot.FlightNumber)
		c.metrics.NotificationsSent.WithLabelValues(preference.String(), metrics.ResultSkipped).Inc()
		record.Status = entity.DeliverySkipped
		record.ErrorDetail = "no channel for preference"
		c.saveRecord(ctx, log, record)
		return false
	}

	recipient := recipientFor(user, preference)
	if recipient == "" {
		log.Debug("No recipient for channel", "channel", preference.String(), "flightNumber", snapshot.FlightNumber)
		c.metrics.NotificationsSent.WithLabelValues(preference.String(), metrics.ResultSkipped).Inc()
		record.Status = entity.DeliverySkipped
		record.ErrorDetail = "missing recipient"
		c.saveRecord(ctx, log, record)
		return false
	}
	record.Recipient = recipient

	err := sender.Send(ctx, &entity.Notification{
		Channel:      preference,
		Recipient:    recipient,
		UserEmail:    user.Email,
		Subject:      subject,
		Body:         body,
		FlightNumber: snapshot.FlightNumber,
		Snapshot:     snapshot,
	})
	if err != nil {
		log.Error("Failed to send notification",
			"channel", preference.String(),
			"flightNumber", snapshot.FlightNumber,
			"error", err)
		c.metrics.NotificationsSent.WithLabelValues(preference.String(), metrics.ResultFailed).Inc()
		record.Status = entity.DeliveryFailed
		record.ErrorDetail = err.Error()
	} else {
		log.Info("Notification sent", "channel", preference.String(), "flightNumber", snapshot.FlightNumber)
		c.metrics.NotificationsSent.WithLabelValues(preference.String(), metrics.ResultSent).Inc()
		record.Status = entity.DeliverySent
	}

	c.saveRecord(ctx, log, record)
	return true
}

func (c *NotificationCycle) saveRecord(ctx context.Context, log logger.Logger, record *entity.DeliveryRecord) {
	if c.historyRepo == nil {
		return
	}
	if err := c.historyRepo.Save(ctx, record); err != nil {
		c.metrics.ErrorsCount.WithLabelValues("save_history").Inc()
		log.Warn("Failed to record delivery", "flightNumber", record.FlightNumber, "error", err)
	}
}

// recipientFor picks the address a channel delivers to
func recipientFor(user *entity.User, preference entity.NotificationPreference) string {
	switch preference {
	case entity.PreferenceSMS:
		return user.PhoneNumber
	case entity.PreferenceEmail, entity.PreferenceInApp:
		return user.Email
	default:
		return ""
	}
}

// uniqueSnapshots keeps the first flight seen for each flight number
func uniqueSnapshots(flights []*entity.Flight) []entity.FlightSnapshot {
	snapshots := make([]entity.FlightSnapshot, 0, len(flights))
	seen := make(map[string]struct{}, len(flights))
	for _, f := range flights {
		if _, ok := seen[f.FlightNumber]; ok {
			continue
		}
		seen[f.FlightNumber] = struct{}{}
		snapshots = append(snapshots, f.Snapshot())
	}
	return snapshots
}
