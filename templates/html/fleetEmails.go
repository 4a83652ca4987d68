package templates

import (
	"fmt"
	"strings"
)

// DeadlineReminderRow is one line of the daily deadline summary email.
type DeadlineReminderRow struct {
	RegistrationNumber string
	DeadlineType       string
	ExpiresAt          string
	Status             string
}

// RenderPasswordResetEmail generates the HTML body for a password reset email.
// The link is a time-limited URL to the reset form.
func RenderPasswordResetEmail(name, resetLink string) string {
	body := fmt.Sprintf(`Hello %s,

A password reset was requested for your FlotaHub account.

Open the link below to choose a new password. The link expires in one hour.

%s

If you did not request a reset you can ignore this email.`, name, resetLink)
	return RenderGenericEmail("Reset your FlotaHub password", body)
}

// RenderDeadlineReminderEmail generates the HTML body of the daily summary of
// urgent and expired vehicle deadlines sent to the fleet administrator.
func RenderDeadlineReminderEmail(rows []DeadlineReminderRow) string {
	var b strings.Builder
	b.WriteString("The following vehicle deadlines need attention:\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s expires %s (%s)\n",
			row.RegistrationNumber, row.DeadlineType, row.ExpiresAt, row.Status)
	}
	b.WriteString("\nLog in to FlotaHub to record the completed operations.")
	return RenderGenericEmail("Vehicle deadline reminders", b.String())
}
