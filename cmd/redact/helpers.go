package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/Veraticus/redact-flow/internal/config"
	"github.com/Veraticus/redact-flow/internal/download"
	"github.com/Veraticus/redact-flow/internal/engine"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/policy"
	"github.com/Veraticus/redact-flow/internal/selection"
	"github.com/spf13/cobra"
)

// envKeyReplacer maps nested keys such as backend.url to REDACT_BACKEND_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// session bundles everything a command needs to run the workflow.
type session struct {
	cfg        *config.Config
	client     *backend.Client
	controller *engine.Controller
}

func newSession(opts ...backend.Option) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClient(cfg.BackendClientConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create redaction client: %w", err)
	}

	var opener engine.Opener
	if cfg.Download.Browser {
		opener = download.NewBrowserOpener()
	} else {
		opener = download.NewSaver(client, cfg.Download.Dir)
	}

	store := selection.NewStore(policy.New())
	controller := engine.NewController(store, client, opener, engine.WithShareMessage(cfg.Share.Message))

	return &session{cfg: cfg, client: client, controller: controller}, nil
}

// selectionFlags are shared by commands that compute a selection.
type selectionFlags struct {
	useCase string
	keep    []string
	redact  []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.useCase, "use-case", "u", "", "use case (identity_verification, address_verification, facial_verification, unclassified)")
	cmd.Flags().StringSliceVar(&f.keep, "keep", nil, "categories to leave visible, applied after the use case")
	cmd.Flags().StringSliceVar(&f.redact, "redact", nil, "categories to redact, applied after the use case")
}

// apply sets the use case on store and then flips individual categories.
func (f *selectionFlags) apply(store *selection.Store) error {
	useCase, err := model.ParseUseCase(f.useCase)
	if err != nil {
		return err
	}
	store.SetUseCase(useCase)

	for _, raw := range f.keep {
		if err := setRedacted(store, raw, false); err != nil {
			return err
		}
	}
	for _, raw := range f.redact {
		if err := setRedacted(store, raw, true); err != nil {
			return err
		}
	}
	return nil
}

func setRedacted(store *selection.Store, raw string, redact bool) error {
	c, err := model.ParseCategory(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if store.Selection().Redacted(c) != redact {
		return store.ToggleCategory(c)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
