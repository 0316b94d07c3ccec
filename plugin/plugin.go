// Package plugin defines the plugin capability contract, a global
// constructor table for string-keyed plugin construction, and the
// repository-scoped registry of built instances.
package plugin

import (
	"log/slog"

	"go.uber.org/atomic"
)

type (
	// Repository is the view a plugin has of its owning logger repository.
	Repository interface {
		// Name returns the repository's name.
		Name() string
		// Logger returns the named logger hosted by the repository.
		Logger(name string) *slog.Logger
	}

	// Plugin is the capability every configurable plugin must expose: a
	// settable name, a settable owning repository, and an activation step
	// that runs after the whole configuration pass has registered it.
	Plugin interface {
		Name() string
		SetName(name string)
		Repository() Repository
		SetRepository(repo Repository)
		// ActivateOptions makes the instance operational once all of its
		// parameters have been bound and it has been registered.
		ActivateOptions() error
		// Shutdown deactivates the instance and releases its resources.
		Shutdown() error
		IsActive() bool
	}
)

// Base is an embeddable plugin skeleton carrying the name, the owning
// repository reference and the active flag, so concrete plugins implement
// only what they add. Its ActivateOptions and Shutdown only flip the active
// flag; plugins with real work to do wrap them.
type Base struct {
	name   string
	repo   Repository
	active atomic.Bool
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) SetName(name string) {
	b.name = name
}

func (b *Base) Repository() Repository {
	return b.repo
}

func (b *Base) SetRepository(repo Repository) {
	b.repo = repo
}

func (b *Base) ActivateOptions() error {
	b.active.Store(true)
	return nil
}

func (b *Base) Shutdown() error {
	b.active.Store(false)
	return nil
}

func (b *Base) IsActive() bool {
	return b.active.Load()
}
