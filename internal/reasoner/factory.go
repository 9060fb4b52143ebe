package reasoner

import (
	"fmt"

	"claimlens/internal/config"
	"claimlens/internal/port"
)

// ProviderFactory is a function that creates a Reasoner from a provider config.
type ProviderFactory func(cfg *config.ReasonerConfig) (port.Reasoner, error)

// registry of reasoner provider factories, populated explicitly via
// RegisterProvider at wiring time.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a reasoner provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a Reasoner from a provider config using the registered factory.
func New(cfg *config.ReasonerConfig) (port.Reasoner, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown reasoner provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
