package model

// DueItem is one entry of a due set: a task that a user must action in the
// target period, with the status recorded for exactly that period.
type DueItem struct {
	Task   Task
	User   User
	Period Period
	Status EventStatus
}
