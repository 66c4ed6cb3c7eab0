package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// JSONPrinter prints tracker information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// dueItemOutput represents a due item in the list output.
type dueItemOutput struct {
	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`
	Area      string `json:"area,omitempty"`
	UserEmail string `json:"user_email"`
	Username  string `json:"username"`
	Week      int    `json:"week"`
	Year      int    `json:"year"`
	Status    string `json:"status"`
}

// taskOutput represents a catalog task in the list output.
type taskOutput struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Tooltip       string    `json:"tooltip,omitempty"`
	IntervalWeeks int       `json:"interval_weeks"`
	Area          string    `json:"area,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// userOutput represents a user in the list output.
type userOutput struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintDueList prints due items in JSON format.
func (j *JSONPrinter) PrintDueList(items []model.DueItem) error {
	out := make([]dueItemOutput, len(items))
	for i, item := range items {
		out[i] = dueItemOutput{
			TaskID:    item.Task.ID,
			TaskTitle: item.Task.Title,
			Area:      item.Task.Area,
			UserEmail: item.User.Email,
			Username:  item.User.Username,
			Week:      item.Period.Week,
			Year:      item.Period.Year,
			Status:    string(item.Status),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintTasks prints catalog tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	out := make([]taskOutput, len(tasks))
	for i, task := range tasks {
		out[i] = taskOutput{
			ID:            task.ID,
			Title:         task.Title,
			Tooltip:       task.Tooltip,
			IntervalWeeks: task.IntervalWeeks,
			Area:          task.Area,
			CreatedAt:     task.CreatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintUsers prints users in JSON format.
func (j *JSONPrinter) PrintUsers(users []model.User) error {
	out := make([]userOutput, len(users))
	for i, u := range users {
		out[i] = userOutput{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
