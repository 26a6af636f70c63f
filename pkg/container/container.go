// Package container wires the process-wide lazy singletons the pipeline
// depends on: the shared LLM factory and the domain→specialist registry.
package container

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/agent/specialist"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/llm"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/prompt"
)

// specialistConstructor builds a specialist.Agent from an LLM instance.
type specialistConstructor func(llm.LLM) specialist.Agent

// Container is a process-wide lazy singleton holding the shared LLM
// factory and the agent factory; it holds no logger. Its lazy slots are
// initialized at most once under contention via sync.Once; LLMFactory
// still takes a mutex on every call to check for a test override.
type Container struct {
	cfg *config.Config

	llmOnce    sync.Once
	llmFactory llm.Factory

	factoryOnce sync.Once
	factory     *AgentFactory

	mu        sync.Mutex
	overrideF llm.Factory
}

// New creates a container bound to cfg. The LLM factory and agent factory
// are built lazily on first use.
func New(cfg *config.Config) *Container {
	return &Container{cfg: cfg}
}

// LLMFactory returns the shared LLM factory, constructing it at most once.
func (c *Container) LLMFactory() llm.Factory {
	c.mu.Lock()
	if c.overrideF != nil {
		f := c.overrideF
		c.mu.Unlock()
		return f
	}
	c.mu.Unlock()

	c.llmOnce.Do(func() {
		c.llmFactory = llm.NewFactoryOverGRPC(c.cfg.LLMAddr)
		slog.Info("llm factory initialized", "addr", c.cfg.LLMAddr)
	})
	return c.llmFactory
}

// Factory returns the process-wide agent factory, constructing it (and its
// domain→constructor registry) at most once.
func (c *Container) Factory() *AgentFactory {
	c.factoryOnce.Do(func() {
		c.factory = newAgentFactory(c.LLMFactory(), c.cfg)
	})
	return c.factory
}

// Reset clears all lazy slots so the next access rebuilds them. Intended
// for tests.
func (c *Container) Reset() {
	c.llmOnce = sync.Once{}
	c.factoryOnce = sync.Once{}
	c.mu.Lock()
	c.overrideF = nil
	c.mu.Unlock()
}

// OverrideLLM replaces the LLM factory with mock and invalidates the agent
// factory slot so subsequent specialists are built against the override.
// Intended for tests.
func (c *Container) OverrideLLM(mock llm.Factory) {
	c.mu.Lock()
	c.overrideF = mock
	c.mu.Unlock()
	c.factoryOnce = sync.Once{}
}

// AgentFactory owns the domain→constructor registry, populated once at
// construction time (write-once; reads are lock-free).
type AgentFactory struct {
	llmFactory llm.Factory
	cfg        *config.Config
	registry   map[prompt.Domain]specialistConstructor
}

func newAgentFactory(llmFactory llm.Factory, cfg *config.Config) *AgentFactory {
	return &AgentFactory{
		llmFactory: llmFactory,
		cfg:        cfg,
		registry: map[prompt.Domain]specialistConstructor{
			prompt.DomainLegal:        specialist.NewLegal,
			prompt.DomainTechnical:    specialist.NewTechnical,
			prompt.DomainFinancial:    specialist.NewFinancial,
			prompt.DomainTimeline:     specialist.NewTimeline,
			prompt.DomainRequirements: specialist.NewRequirements,
			prompt.DomainGeneral:      specialist.NewGeneral,
		},
	}
}

// Create builds the specialist for domain. It raises on an unknown (never
// registered) domain — callers must coerce stray "quantitative"/"none" to
// "general" before calling Create.
func (f *AgentFactory) Create(domain prompt.Domain) (specialist.Agent, error) {
	ctor, ok := f.registry[domain]
	if !ok {
		return nil, fmt.Errorf("agent factory: no specialist registered for domain %q", domain)
	}
	model, err := f.llmFactory.ForTemperature(f.cfg.SpecialistTemperature)
	if err != nil {
		return nil, fmt.Errorf("agent factory: construct llm for domain %q: %w", domain, err)
	}
	return ctor(model), nil
}
