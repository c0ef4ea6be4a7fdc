package log

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("nível inválido cai para info e retorna erro", func(t *testing.T) {
		closer, err := Setup(Options{Level: "verboso"})

		assert.Error(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	})

	t.Run("arquivo rotacionado", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "api.log")

		closer, err := Setup(Options{Level: "debug", File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
		require.NoError(t, err)
		require.NotNil(t, closer)
		defer closer.Close()

		L.Info("mensagem gravada")
		assert.FileExists(t, file)
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	})
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	l := &logger{entry: logrus.NewEntry(base)}

	l.WithFields(Fields{"region": "EMEA", "seed": 42}).Info("teste")

	assert.Contains(t, buf.String(), `"region":"EMEA"`)
	assert.NotContains(t, buf.String(), "seed")
}

func TestForContext_CorrelationID(t *testing.T) {
	ctx, correlationID := WithCorrelationID(context.Background())

	assert.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}
