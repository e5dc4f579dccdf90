package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common OptiFlow workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_planning").
		Description("Plan the day with the Eisenhower matrix and the 1-3-5 rule.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Planning Session", `Help me plan my day. Please:

1. Read the Eisenhower matrix from the optiflow://matrix resource
2. Read today's 1-3-5 plan from the optiflow://plan/today resource
3. Read today's time blocks from the optiflow://schedule/today resource

Based on this information:
- Name the one major task for the morning deep-work block
- Pick up to three medium and five small tasks, preferring the Do quadrant
- Point out buckets that are over capacity

For tasks that do not fit today, suggest whether to move them with
task.update, delegate them, or delete them. Tasks written to a full
day roll over to the next day with room automatically.`), nil
		})

	srv.Prompt("weekly_review").
		Description("Review the week's progress and clean up the task list.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Weekly Review Session", `Let's conduct a weekly review. Please:

1. Get the completion numbers with the planning.stats tool
2. Review all tasks using the optiflow://tasks resource
3. Look at the Kanban board with the planning.board tool

Help me analyze:
- Which tasks were completed and which are overdue
- Which tasks sit in the Delete quadrant and can go
- Which A and B tasks should be planned for next week

Finish with a short list of task.update and task.delete calls to make.`), nil
		})

	srv.Prompt("task_breakdown").
		Description("Break down a complex task into 1-3-5 sized subtasks.").
		Argument("task_description", "Description of the task to break down", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			taskDesc := args["task_description"]
			if taskDesc == "" {
				taskDesc = "[Please describe the task you want to break down]"
			}

			return userPrompt("Task Breakdown Assistant", fmt.Sprintf(`Help me break down this task into smaller, actionable subtasks:

**Task:** %s

Please:
1. Break it into 3-7 subtasks that can each be finished in one sitting
2. For each subtask, suggest:
   - A clear, action-oriented name
   - Estimated hours
   - ABCDE priority (a-e)
   - A 1-3-5 bucket (major, medium or small)
3. Suggest an order to complete them

Once I approve the breakdown, use the task.create tool to create each subtask.`, taskDesc)), nil
		})

	srv.Prompt("focus_session").
		Description("Pick a task and run a pomodoro on it.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Focus Session Setup", `I want to start a focus session. Please:

1. Check the focus clock with the focus.status tool
2. Review today's plan using optiflow://plan/today
3. Recommend the task I should work on and why

After I confirm, start the clock with focus.start. When I say I am
done with the task, mark it with task.toggle_complete.`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
