package endpoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-streamio/config"
	"github.com/dep2p/go-streamio/pkg/interfaces"
	"github.com/dep2p/go-streamio/pkg/types"
)

func TestModule_ProvidesFactory(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Endpoint.IdleTimeout = config.Duration(5 * time.Second)
	sched := newManualScheduler()

	var f *Factory
	app := fxtest.New(t,
		Module,
		fx.Supply(cfg),
		fx.Provide(func() interfaces.Scheduler { return sched }),
		fx.Populate(&f),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, f)
	assert.Equal(t, 5*time.Second, f.Config().IdleTimeout)

	info := types.ConnInfo{ID: "c", Protocol: "yamux"}
	ep := f.New(7, NewFakeSession(), info)
	assert.Equal(t, types.StreamID(7), ep.ID())
	assert.Equal(t, 5*time.Second, ep.IdleTimeout())
	assert.Equal(t, "yamux", ep.Info().Protocol)
}

func TestModule_Defaults(t *testing.T) {
	var f *Factory
	app := fxtest.New(t, Module, fx.Populate(&f))
	defer app.RequireStart().RequireStop()

	assert.Equal(t, DefaultConfig(), f.Config())

	// 无定时器服务时不启用空闲超时
	ep := f.New(1, NewFakeSession(), types.ConnInfo{})
	assert.Zero(t, ep.IdleTimeout())
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Endpoint.IdleTimeout = 0
	assert.Zero(t, ConfigFromUnified(cfg).IdleTimeout)
}
