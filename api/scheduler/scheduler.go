package scheduler

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/databases"
	"github.com/flotahub/fleet-api/models"
	templates "github.com/flotahub/fleet-api/templates/html"
)

// reminderWindowDays bounds the daily summary to deadlines expiring within a
// week, plus anything already expired
const reminderWindowDays = 7

// Scheduler handles periodic background jobs for deadline reminders
type Scheduler struct {
	cron       *cron.Cron
	VehicleDB  databases.VehicleDatabase
	DeadlineDB databases.CurrentDeadlineDatabase
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	vehicleDB databases.VehicleDatabase,
	deadlineDB databases.CurrentDeadlineDatabase,
	lockDB databases.SchedulerLockDatabase,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		VehicleDB:  vehicleDB,
		DeadlineDB: deadlineDB,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Mail the urgent and expired deadline summary daily at 6 AM UTC
	_, err := s.cron.AddFunc("0 6 * * *", s.sendDeadlineReminders)
	if err != nil {
		zap.S().Errorw("failed to register deadline reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Deadline reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Deadline reminder scheduler stopped")
}

// sendDeadlineReminders mails the fleet administrator a summary of every
// active vehicle's urgent and expired deadlines
func (s *Scheduler) sendDeadlineReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "deadline_reminder_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for deadline reminder job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Deadline reminder job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "deadline_reminder_job", s.instanceID)

	zap.S().Infow("Running deadline reminder job", "instance", s.instanceID)

	rows, err := s.collectReminderRows(ctx, time.Now())
	if err != nil {
		zap.S().Errorw("failed to collect deadline reminders", "error", err)
		return
	}
	if len(rows) == 0 {
		zap.S().Debug("No urgent or expired deadlines, skipping reminder email")
		return
	}

	adminEmail := os.Getenv("ADMIN_ALERT_EMAIL")
	if adminEmail == "" {
		zap.S().Warn("ADMIN_ALERT_EMAIL not set, skipping reminder email")
		return
	}
	if err := sendReminderEmail(adminEmail, rows); err != nil {
		zap.S().Errorw("failed to send deadline reminder email", "error", err)
		return
	}
	zap.S().Infow("Deadline reminder email sent", "deadlines", len(rows))
}

// collectReminderRows finds the current deadlines of active vehicles that are
// urgent or already expired, soonest expiry first. Dates are stored as
// YYYY-MM-DD strings, so a lexicographic $lte matches chronological order.
func (s *Scheduler) collectReminderRows(ctx context.Context, now time.Time) ([]templates.DeadlineReminderRow, error) {
	cutoff := now.UTC().AddDate(0, 0, reminderWindowDays).Format(models.DateLayout)

	deadlines, err := s.DeadlineDB.Find(ctx, bson.M{"expiresAt": bson.M{"$lte": cutoff}})
	if err != nil {
		return nil, err
	}
	if len(deadlines) == 0 {
		return nil, nil
	}

	vehicleIDs := make([]primitive.ObjectID, 0, len(deadlines))
	for _, d := range deadlines {
		vehicleIDs = append(vehicleIDs, d.VehicleID)
	}
	vehicles, err := s.VehicleDB.Find(ctx, bson.M{
		"_id":      bson.M{"$in": vehicleIDs},
		"isActive": true,
	})
	if err != nil {
		return nil, err
	}
	registrations := make(map[primitive.ObjectID]string, len(vehicles))
	for _, v := range vehicles {
		registrations[v.ID] = v.RegistrationNumber
	}

	var rows []templates.DeadlineReminderRow
	for _, d := range deadlines {
		registration, ok := registrations[d.VehicleID]
		if !ok {
			continue // vehicle deactivated or gone
		}
		status, err := models.StatusForDate(d.ExpiresAt, now)
		if err != nil {
			zap.S().Warnw("skipping deadline with unparseable expiry",
				"vehicleId", d.VehicleID.Hex(), "type", d.Type, "expiresAt", d.ExpiresAt)
			continue
		}
		rows = append(rows, templates.DeadlineReminderRow{
			RegistrationNumber: registration,
			DeadlineType:       d.Type,
			ExpiresAt:          d.ExpiresAt,
			Status:             status,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ExpiresAt < rows[j].ExpiresAt })
	return rows, nil
}

func sendReminderEmail(toEmail string, rows []templates.DeadlineReminderRow) error {
	from := mail.NewEmail("FlotaHub", "no-reply@flotahub.com")
	subject := fmt.Sprintf("%d vehicle deadlines need attention", len(rows))
	to := mail.NewEmail("", toEmail)
	plain := "Log in to FlotaHub to review urgent and expired vehicle deadlines."
	html := templates.RenderDeadlineReminderEmail(rows)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(msg)
	return err
}
