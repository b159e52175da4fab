package service

import (
	"fmt"
	"sync"

	"github.com/cloudtasker/state-converger/internal/core/domain"
	"github.com/cloudtasker/state-converger/internal/core/ports"
	"github.com/cloudtasker/state-converger/internal/errors"
)

type ComponentRegistry struct {
	mu        sync.RWMutex
	gateways  map[domain.ResourceKind]ports.ResourceGateway
	reporters map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		gateways:  make(map[domain.ResourceKind]ports.ResourceGateway),
		reporters: make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterGateway(gateway ports.ResourceGateway) error {
	if gateway == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil resource gateway")
	}
	kind := gateway.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "resource gateway kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gateways[kind]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("resource gateway for kind '%s' already registered", kind))
	}
	r.gateways[kind] = gateway
	return nil
}

func (r *ComponentRegistry) GetGateway(kind domain.ResourceKind) (ports.ResourceGateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gateway, exists := r.gateways[kind]
	if !exists {
		return nil, errors.New(errors.CodeNotImplemented, fmt.Sprintf("resource gateway for kind '%s' not implemented", kind))
	}
	return gateway, nil
}

func (r *ComponentRegistry) RegisterReporter(name string, reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	if name == "" {
		return errors.New(errors.CodeInternal, "reporter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[name]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter '%s' already registered", name))
	}
	r.reporters[name] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(name string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[name]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("reporter '%s' not found", name))
	}
	return reporter, nil
}
