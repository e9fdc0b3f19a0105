package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerAddSubtasksTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerOverdueTasksTool(srv, svc)
	registerStatsTool(srv, svc)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks as a tree, filtered and sorted. Sub-tasks follow their parent with a larger depth."),
		mcp.WithString("status",
			mcp.Description("Completion filter."),
			mcp.Enum("all", "active", "completed"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority filter."),
			mcp.Enum("all", "low", "medium", "high", "urgent"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order for top-level tasks."),
			mcp.Enum("createdAt", "dueDate", "priority", "completionDate"),
		),
		mcp.WithBoolean("overdue_only",
			mcp.Description("Only open tasks past their due date; overrides status and priority."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := ListOptions{
			Status:      request.GetString("status", "all"),
			Priority:    request.GetString("priority", "all"),
			Sort:        request.GetString("sort", "createdAt"),
			OverdueOnly: request.GetBool("overdue_only", false),
		}
		tasks, err := svc.ListTasks(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a new task, optionally as a sub-task of an existing one."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title, at least 3 characters."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
		mcp.WithString("due",
			mcp.Description("Optional due date as YYYY-MM-DD or an RFC3339 timestamp."),
		),
		mcp.WithString("due_time",
			mcp.Description("Optional time of day for the due date, HH:mm."),
		),
		mcp.WithString("priority",
			mcp.Description("Priority; defaults to medium."),
			mcp.Enum("low", "medium", "high", "urgent"),
		),
		mcp.WithString("parent_id",
			mcp.Description("Identifier of the parent task."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Due         string `json:"due"`
			DueTime     string `json:"due_time"`
			Priority    string `json:"priority"`
			ParentID    string `json:"parent_id"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateTask(ctx, CreateOptions{
			Title:       args.Title,
			Description: args.Description,
			Due:         args.Due,
			DueTime:     args.DueTime,
			Priority:    args.Priority,
			ParentID:    args.ParentID,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddSubtasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_subtasks",
		mcp.WithDescription("Add several sub-tasks to a parent task at once. Nothing is added if any title is invalid."),
		mcp.WithString("parent_id",
			mcp.Required(),
			mcp.Description("Identifier of the parent task."),
		),
		mcp.WithArray("titles",
			mcp.Required(),
			mcp.Description("Titles of the sub-tasks to create."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ParentID string   `json:"parent_id"`
			Titles   []string `json:"titles"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		created, err := svc.AddSubtasks(ctx, args.ParentID, args.Titles)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"parentId": args.ParentID,
			"created":  created,
			"count":    len(created),
		})
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Edit a task. Only the provided fields change; an empty due clears the due date."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to edit."),
		),
		mcp.WithString("title",
			mcp.Description("New title, at least 3 characters."),
		),
		mcp.WithString("description",
			mcp.Description("New description."),
		),
		mcp.WithString("due",
			mcp.Description("New due date as YYYY-MM-DD or RFC3339, or empty to clear."),
		),
		mcp.WithString("priority",
			mcp.Description("New priority."),
			mcp.Enum("low", "medium", "high", "urgent"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := UpdateOptions{ID: id}
		args := request.GetArguments()
		if v, ok := args["title"].(string); ok {
			opts.Title = &v
		}
		if v, ok := args["description"].(string); ok {
			opts.Description = &v
		}
		if v, ok := args["due"].(string); ok {
			opts.Due = &v
		}
		if v, ok := args["priority"].(string); ok {
			opts.Priority = &v
		}

		dto, err := svc.UpdateTask(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task between active and completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task together with its direct sub-tasks."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		removed, err := svc.DeleteTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"removed": removed,
			"count":   len(removed),
		})
	})
}

func registerOverdueTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"overdue_tasks",
		mcp.WithDescription("List open tasks whose due date has passed."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.OverdueTasks(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"task_stats",
		mcp.WithDescription("Productivity summary: totals, completion rate, open tasks per priority and overdue count."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(st)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
