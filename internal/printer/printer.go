package printer

import "github.com/HubOfCJ/testcase-manager/internal/model"

// Printer knows how to print tracker information in different formats.
type Printer interface {
	PrintDueList(items []model.DueItem) error
	PrintTasks(tasks []model.Task) error
	PrintUsers(users []model.User) error
	PrintMessage(msg string) error
}
