package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"voiceswitch/internal/api"
	"voiceswitch/internal/config"
	"voiceswitch/internal/logging"
	"voiceswitch/internal/services"
)

type commandContext struct {
	configFlag  *string
	gameDirFlag *string
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	serviceOnce sync.Once
	service     *api.Service
	logger      *slog.Logger
	serviceErr  error

	requestID string
}

func newCommandContext(configFlag, gameDirFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		gameDirFlag: gameDirFlag,
		jsonFlag:    jsonFlag,
		requestID:   uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.gameDirFlag != nil && strings.TrimSpace(*c.gameDirFlag) != "" {
			if err := cfg.OverrideGameDir(*c.gameDirFlag); err != nil {
				c.configErr = fmt.Errorf("--game-dir: %w", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureService() (*api.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.serviceErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logging.NewComponentLogger(logger, "cli")
		c.service = api.NewService(cfg, logger)
	})
	return c.service, c.serviceErr
}

func (c *commandContext) requestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithRequestID(ctx, c.requestID)
}

// withLock serializes commands that mutate snapshots or the game tree.
func (c *commandContext) withLock(ctx context.Context, fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another voiceswitch command is running (lock %s)", cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil && c.logger != nil {
			logging.WithContext(ctx, c.logger).Warn("failed to release lock",
				logging.String("lock", cfg.LockPath()),
				logging.Error(err),
			)
		}
	}()
	return fn()
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
