package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// TablePrinter prints tracker information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintDueList prints due items in a table format.
func (t *TablePrinter) PrintDueList(items []model.DueItem) error {
	if len(items) == 0 {
		fmt.Fprintln(t.writer, "Nothing due.")
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "USER\tTASK\tAREA\tPERIOD\tSTATUS")

	// Print rows
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.User.Username, item.Task.Title, item.Task.Area, item.Period, item.Status)
	}

	return nil
}

// PrintTasks prints catalog tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tTITLE\tAREA\tINTERVAL\tCREATED")

	// Print rows.
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dw\t%s\n",
			task.ID, task.Title, task.Area, task.IntervalWeeks, TimeAgo(task.CreatedAt))
	}

	return nil
}

// PrintUsers prints users in a table format.
func (t *TablePrinter) PrintUsers(users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "USERNAME\tEMAIL\tROLE\tCREATED")

	// Print rows.
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Username, u.Email, u.Role, TimeAgo(u.CreatedAt))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
