package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/reclaimctl/reclaim/internal/config"
	"github.com/reclaimctl/reclaim/pkg/reclaim"
)

// getClient creates a client from the resolved config.
func getClient(logOutput io.Writer) (*reclaim.Client, *config.ResolvedConfig, error) {
	cfg, err := config.ResolveConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := reclaim.NewClient(clientOptions(cfg, logOutput)...)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// clientOptions converts resolved config into client options.
func clientOptions(cfg *config.ResolvedConfig, logOutput io.Writer) []reclaim.ClientOption {
	opts := []reclaim.ClientOption{
		reclaim.WithToken(cfg.Token),
		reclaim.WithTimeout(cfg.Timeout),
		reclaim.WithLogger(log.New(logOutput, "reclaim: ", 0)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, reclaim.WithBaseURL(cfg.BaseURL))
	}
	for _, keyword := range cfg.AliasKeywords() {
		opts = append(opts, reclaim.WithSchemeAlias(keyword, cfg.Aliases[keyword]...))
	}
	return opts
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case reclaim.IsAuthenticationError(err):
		return ExitAuthFailed
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case reclaim.IsNotFound(err):
		return ExitTaskNotFound
	case reclaim.IsInvalidRecord(err):
		return ExitInvalidInput
	default:
		return ExitGeneralError
	}
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error, format outputFormat) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, format)
	os.Exit(mapErrorToExitCode(err))
}

// parsePriority parses a priority symbol or name.
func parsePriority(s string) (reclaim.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p1", "critical":
		return reclaim.PriorityCritical, nil
	case "p2", "high":
		return reclaim.PriorityHigh, nil
	case "p3", "normal":
		return reclaim.PriorityNormal, nil
	case "p4", "low":
		return reclaim.PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority: %s (use p1-p4 or critical/high/normal/low)", s)
	}
}

// parseFilter validates the list filter flag.
func parseFilter(s string) (reclaim.TaskFilter, error) {
	switch f := reclaim.TaskFilter(strings.ToLower(s)); f {
	case reclaim.FilterAll, reclaim.FilterActive, reclaim.FilterCompleted, reclaim.FilterOverdue:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter: %s (use active, completed or overdue)", s)
	}
}
