package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

func TestModule_Provides(t *testing.T) {
	var reporter interfaces.Reporter

	app := fxtest.New(t,
		Module,
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, reporter)
	_, ok := reporter.(*Collector)
	assert.True(t, ok)
}

func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var reporter interfaces.Reporter
	app := fxtest.New(t,
		Module,
		fx.Supply(cfg),
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, Nop{}, reporter)
}

func TestModule_UsesRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()

	var reporter interfaces.Reporter
	app := fxtest.New(t,
		Module,
		fx.Provide(func() prometheus.Registerer { return reg }),
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	reporter.IdleExpired()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Metrics.Namespace = "custom"
	assert.Equal(t, "custom", ConfigFromUnified(cfg).Namespace)
}
