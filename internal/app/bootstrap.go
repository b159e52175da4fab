package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cloudtasker/state-converger/internal/adapters/platform/gcp"
	"github.com/cloudtasker/state-converger/internal/adapters/platform/gcp/limiter"
	"github.com/cloudtasker/state-converger/internal/adapters/platform/kube"
	"github.com/cloudtasker/state-converger/internal/config"
	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/core/service"
	"github.com/cloudtasker/state-converger/internal/errors"
	"github.com/cloudtasker/state-converger/internal/log"
	"github.com/cloudtasker/state-converger/internal/reporting/json"
	"github.com/cloudtasker/state-converger/internal/reporting/text"
)

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	// Flags and env vars arrive as strings; let list-valued task fields
	// accept comma-separated input.
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.StructCtx(ctx, cfg)
	if err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	if err = cfg.Task.Validate(); err != nil {
		logger.Errorf(ctx, err, "Task validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	kind, ok := domain.ParseKind(cfg.Task.Kind)
	if !ok {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown resource kind '%s'", cfg.Task.Kind), "")
	}

	registry := service.NewComponentRegistry()
	logger.Debugf(ctx, "Component registry initialized")

	if err = registerGateway(ctx, registry, kind, cfg, logger); err != nil {
		return nil, err
	}

	if err = registerReporters(registry, logger); err != nil {
		return nil, err
	}
	reporter, err := registry.GetReporter(cfg.Settings.ReporterType)
	if err != nil {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}

	runner, err := service.NewConvergenceService(
		registry, reporter, logger.WithFields(map[string]any{"component": "converger"}), cfg.Task,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize convergence service")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(runner, reporter, logger), nil
}

// registerGateway wires up only the platform the task's kind targets, so a
// cluster task never demands cloud credentials and vice versa.
func registerGateway(ctx context.Context, registry *service.ComponentRegistry, kind domain.ResourceKind, cfg *config.Config, logger ports.Logger) error {
	switch kind {
	case domain.KindComputeInstance:
		if cfg.Platform.GCP == nil {
			return errors.NewUserFacing(errors.CodeConfigValidation,
				"compute instance tasks require the platform.gcp section", "Configure platform.gcp.project_id.")
		}
		provLog := logger.WithFields(map[string]any{"provider": "gcp"})
		limiter.Initialize(cfg.Settings.APIRPS, provLog)

		api, err := gcp.NewComputeClient(ctx, *cfg.Platform.GCP, provLog)
		if err != nil {
			return err
		}
		gateway, err := gcp.NewInstanceGateway(api, cfg.Task.Zone(), provLog)
		if err != nil {
			return err
		}
		provLog.Infof(ctx, "Using GCP compute platform (project: %s, zone: %s)", cfg.Platform.GCP.ProjectID, cfg.Task.Zone())
		return registry.RegisterGateway(gateway)

	case domain.KindNamespace, domain.KindPod, domain.KindReplicationController, domain.KindService:
		provLog := logger.WithFields(map[string]any{"provider": "kubernetes"})
		client, err := kube.NewClientset(cfg.Platform.Kubernetes)
		if err != nil {
			return err
		}
		namespace := kube.ResolveNamespace(cfg.Platform.Kubernetes)
		provLog.Infof(ctx, "Using Kubernetes platform (namespace: %s)", namespace)

		var gateway ports.ResourceGateway
		switch kind {
		case domain.KindNamespace:
			gateway = kube.NewNamespaceGateway(client, provLog)
		case domain.KindPod:
			gateway = kube.NewPodGateway(client, namespace, provLog)
		case domain.KindReplicationController:
			gateway = kube.NewReplicationControllerGateway(client, namespace, provLog)
		case domain.KindService:
			gateway = kube.NewServiceGateway(client, namespace, provLog)
		}
		return registry.RegisterGateway(gateway)
	}

	return errors.New(errors.CodeNotImplemented,
		fmt.Sprintf("resource gateway for kind '%s' not implemented", kind))
}

func registerReporters(registry *service.ComponentRegistry, logger ports.Logger) error {
	textReporter, err := text.NewReporter(text.Config{},
		logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText}))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
	}
	if err = registry.RegisterReporter(text.ReporterTypeText, textReporter); err != nil {
		return err
	}

	jsonReporter, err := json.NewReporter(json.Config{},
		logger.WithFields(map[string]any{"component": "reporter", "type": json.ReporterTypeJSON}))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
	}
	return registry.RegisterReporter(json.ReporterTypeJSON, jsonReporter)
}
