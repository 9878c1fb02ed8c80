package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "json", &buf)
	log.WithField("order_id", 7).Debug("order created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["message"])
	assert.Equal(t, "debug", entry["severity"])
	assert.EqualValues(t, 7, entry["order_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log := New("chatty", "text", nil)
	assert.Equal(t, logrus.InfoLevel, log.Level)
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, logrus.StandardLogger(), FromContext(context.Background()))

	log := New("info", "json", &bytes.Buffer{})
	entry := log.WithField("request_id", "abc")
	ctx := WithLogger(context.Background(), entry)
	assert.Equal(t, entry, FromContext(ctx))
}
