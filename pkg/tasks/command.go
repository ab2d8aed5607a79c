package tasks

import (
	"context"
	"fmt"

	sharedconfig "github.com/opsboard/taskboard/pkg/config"
	"github.com/opsboard/taskboard/pkg/httpserver"
	"github.com/opsboard/taskboard/pkg/tasks/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Command() *cobra.Command {
	return &cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd.Context())
		},
	}
}

func start(ctx context.Context) error {
	var cfg config.Config
	if err := sharedconfig.ReadFromEnv(&cfg, config.Default()); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}
	logger = logger.Named("tasks")

	handler, err := InitializeHttpHandler(cfg, logger)
	if err != nil {
		return fmt.Errorf("init http handler: %w", err)
	}

	return httpserver.RegisterAndStart(ctx, logger, cfg.Http.Address, handler)
}
