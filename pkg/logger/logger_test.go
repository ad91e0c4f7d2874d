package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-activos/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verboso"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
}

func TestComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "control-activos", Out: &buf})

	c := l.Component("motor")
	c.Info().Str("asset_id", "a-1").Msg("salida registrada")
	c.Debug().Msg("no se escribe")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "control-activos", line["service"])
	assert.Equal(t, "motor", line["component"])
	assert.Equal(t, "a-1", line["asset_id"])
	assert.Equal(t, "salida registrada", line["message"])
}
