package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/common"
)

func TestNew_WithoutCache(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Badger.Enabled = false
	cfg.Geocoding.Enabled = false

	app, err := New(cfg, arbor.NewLogger())
	require.NoError(t, err)

	assert.Nil(t, app.Storage)
	assert.Nil(t, app.Geocoder)
	assert.NotNil(t, app.FinancialService)
	assert.NotNil(t, app.CompanyBuilder)
	assert.NotNil(t, app.SchedulerService)
	assert.False(t, app.SchedulerService.IsRunning())
	assert.NoError(t, app.Close())
}

func TestNew_WithCache(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Badger.Path = filepath.Join(t.TempDir(), "cache")

	app, err := New(cfg, arbor.NewLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Geocoder)
	assert.NoError(t, app.Close())
	assert.NoError(t, app.Close())
}
