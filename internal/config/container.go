package config

import (
	"pdf-ocr-converter/internal/domain"
	"pdf-ocr-converter/internal/service"
	"pdf-ocr-converter/internal/task"
	"pdf-ocr-converter/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config    domain.Config
	Logger    domain.Logger
	Registry  domain.TaskRegistry
	Converter domain.Converter
	Runner    domain.TaskRunner
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	registry := task.NewRegistry()
	converter := service.NewConverter(appLogger)
	runner := task.NewRunner(registry, converter, appLogger)

	return &Container{
		Config:    config,
		Logger:    appLogger,
		Registry:  registry,
		Converter: converter,
		Runner:    runner,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetRegistry returns the task registry instance
func (c *Container) GetRegistry() domain.TaskRegistry {
	return c.Registry
}

// GetRunner returns the task runner instance
func (c *Container) GetRunner() domain.TaskRunner {
	return c.Runner
}
