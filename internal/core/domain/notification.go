package domain

// NotificationKind distinguishes the email templates the notifier can render.
type NotificationKind string

const (
	NotificationWelcome       NotificationKind = "welcome"
	NotificationTaskCompleted NotificationKind = "task_completed"
)

// Notification is a queued email intent. Task is set only for
// NotificationTaskCompleted.
type Notification struct {
	Kind NotificationKind
	User User
	Task *Task
}
