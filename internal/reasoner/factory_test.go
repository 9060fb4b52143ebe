package reasoner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/config"
	"claimlens/internal/port"
	"claimlens/internal/reasoner"
	"claimlens/mocks"
)

func TestNew_RegisteredProvider(t *testing.T) {
	stub := new(mocks.MockReasoner)
	reasoner.RegisterProvider("stub", func(cfg *config.ReasonerConfig) (port.Reasoner, error) {
		return stub, nil
	})

	r, err := reasoner.New(&config.ReasonerConfig{Provider: "stub"})

	require.NoError(t, err)
	assert.Same(t, stub, r)
}

func TestNew_UnknownProvider(t *testing.T) {
	r, err := reasoner.New(&config.ReasonerConfig{Provider: "does-not-exist"})

	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reasoner provider")
}
