package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, update, complete and delete your tasks.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(deleteCmd)
}

// resolveTaskID accepts a full task ID or a unique prefix of one.
func resolveTaskID(ctx context.Context, app *cli.App, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("task ID is required")
	}
	t, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: arg, AllowPrefix: true})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}
