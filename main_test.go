package main

import (
	"testing"

	"github.com/prebid/prebid-content-server/errortypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PCS_PORT", "9100")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 6060, cfg.AdminPort)
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	t.Setenv("PCS_ADMIN_PORT", "8000")

	cfg, err := loadConfig()
	assert.Nil(t, cfg)
	assert.Equal(t, errortypes.InvalidConfigErrorCode, errortypes.ReadCode(err))
}
