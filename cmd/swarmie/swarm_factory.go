package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ShayCichocki/swarmie/internal/archive"
	"github.com/ShayCichocki/swarmie/internal/claude"
	"github.com/ShayCichocki/swarmie/internal/config"
	"github.com/ShayCichocki/swarmie/internal/swarm"
)

// session bundles everything a command needs to run against a swarm:
// the swarm itself, the resolved state path for saving, a context that
// cancels on SIGINT/SIGTERM, and the cleanup hook.
type session struct {
	swarm     *swarm.Swarm
	statePath string
	ctx       context.Context

	cancel  context.CancelFunc
	archive *archive.Archive
}

// newSession loads configuration and state and builds a swarm for one
// command invocation. Flags override config values.
func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	statePath := cfg.Defaults.StateFile
	if flagStateFile != "" {
		statePath = flagStateFile
	}

	maxConcurrent := cfg.Defaults.MaxConcurrent
	if flagMaxConcurrent > 0 {
		maxConcurrent = flagMaxConcurrent
	}

	runner, err := buildRunner(cfg)
	if err != nil {
		return nil, err
	}

	opts := []swarm.Option{
		swarm.WithRunner(runner),
		swarm.WithMaxConcurrent(maxConcurrent),
	}
	if flagWorkDir != "" {
		opts = append(opts, swarm.WithWorkDir(flagWorkDir))
	}

	var arch *archive.Archive
	if flagArchive != "" {
		arch, err = archive.Open(flagArchive)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		opts = append(opts, swarm.WithRecorder(arch))
	}

	sw, err := swarm.Load(statePath, opts...)
	if err != nil {
		if arch != nil {
			arch.Close()
		}
		return nil, fmt.Errorf("load state: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &session{
		swarm:     sw,
		statePath: statePath,
		ctx:       ctx,
		cancel:    cancel,
		archive:   arch,
	}, nil
}

// buildRunner selects the invocation backend. The default is the claude
// CLI subprocess; anthropic.use_api switches to the direct API.
func buildRunner(cfg *config.Config) (claude.Runner, error) {
	if cfg.Anthropic.UseAPI {
		apiKey, _ := config.GetAPIKey(cfg)
		runner, err := claude.NewAPIRunner(claude.APIConfig{
			APIKey:     apiKey,
			Model:      cfg.Anthropic.Model,
			UseBedrock: cfg.AWS.Bedrock,
			AWSRegion:  cfg.AWS.Region,
			AWSProfile: cfg.AWS.Profile,
		})
		if err != nil {
			return nil, fmt.Errorf("create API runner: %w", err)
		}
		return runner, nil
	}

	if err := CheckClaudeCLI(); err != nil {
		return nil, err
	}
	return claude.NewProcessRunner(claude.ProcessConfig{
		OutputFormat: cfg.Defaults.OutputFormat,
	}), nil
}

// close saves the swarm state and releases session resources. Save
// failures are logged rather than returned so a deferred close never
// masks the command's own error.
func (s *session) close() {
	s.cancel()
	if s.archive != nil {
		s.archive.Close()
	}
	if err := s.swarm.Save(s.statePath); err != nil {
		log.Printf("[swarmie] save state: %v", err)
	}
}
