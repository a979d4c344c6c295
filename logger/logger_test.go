package logger

import (
	"testing"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   config.LogLevel
		want logging.Level
	}{
		{config.Debug, logging.DEBUG},
		{config.Info, logging.INFO},
		{config.Notice, logging.NOTICE},
		{config.Warn, logging.WARNING},
		{config.Error, logging.ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "level %s", tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggingBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Infof("user %s logged in", "admin")
		Warning("no backend configured yet")
	})
}
