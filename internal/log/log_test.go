package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)
	h.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	l := &log.Logger{Handler: h, Level: log.DebugLevel}
	l.WithFields(log.Fields{"capacity": 2, "b": "x"}).Warn("evicted")

	assert.Equal(t, "2024-05-06 07:08:09 W evicted b=x capacity=2\n", buf.String())
}

func TestInitLevels(t *testing.T) {
	t.Setenv(EnvLevel, "")
	require.NoError(t, Init(""))
	assert.Equal(t, log.InfoLevel, log.Log.(*log.Logger).Level)

	t.Setenv(EnvLevel, "debug")
	require.NoError(t, Init(""))
	assert.Equal(t, log.DebugLevel, log.Log.(*log.Logger).Level)

	require.NoError(t, Init("ERROR"))
	assert.Equal(t, log.ErrorLevel, log.Log.(*log.Logger).Level)

	assert.Error(t, Init("loud"))
}
