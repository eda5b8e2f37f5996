package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rochadelon/super-productivity-mcp/internal/config"
	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

// Inspection commands: one-shot listings against a running bridge's
// REST surface. Handy for checking what the plugin is reporting without
// wiring up an MCP client.

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List all tasks from a running bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(func(ctx context.Context, c *superprod.HTTPClient) (any, error) {
				return c.GetTasks(ctx)
			})
		},
	}
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List all projects from a running bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(func(ctx context.Context, c *superprod.HTTPClient) (any, error) {
				return c.GetProjects(ctx)
			})
		},
	}
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags from a running bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(func(ctx context.Context, c *superprod.HTTPClient) (any, error) {
				return c.GetTags(ctx)
			})
		},
	}
}

func inspect(fetch func(context.Context, *superprod.HTTPClient) (any, error)) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := superprod.NewHTTPClient(cfg.BaseURL, cfg.Token)
	result, err := fetch(ctx, client)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
