package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/chat"
	"pizzabot/internal/config"
	"pizzabot/internal/intent"
	"pizzabot/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Database.DSN = filepath.Join(t.TempDir(), "service.db")
	return cfg
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNew_WiresEngine(t *testing.T) {
	svc, err := New(context.Background(), testConfig(t), quietLogger())
	require.NoError(t, err)
	defer svc.Close()

	assert.Greater(t, svc.Catalog.Len(), 0)
	assert.True(t, svc.Orders.Strict())

	sess := chat.NewSession("s1", "English")
	reply, err := svc.Engine.Handle(context.Background(), sess, "tell me about the zinger burger")
	require.NoError(t, err)
	assert.Equal(t, intent.ItemInquiry, reply.Intent)

	_, err = svc.Engine.AddCurrentItem(sess)
	require.NoError(t, err)
	receipt, err := svc.Engine.Checkout(context.Background(), sess, chat.CheckoutForm{Name: "Ali", Address: "Street 1"})
	require.NoError(t, err)

	stored, err := svc.Orders.FindByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", stored.CustomerName)
}

func TestNew_MissingEnglishTextIsConfigurationError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Localization.Path = filepath.Join(t.TempDir(), "texts.yaml")
	require.NoError(t, os.WriteFile(cfg.Localization.Path, []byte("welcome:\n  English: \"\"\n"), 0o644))

	_, err := New(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, models.IsConfiguration(err))
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generation.Provider = "carrier-pigeon"

	_, err := New(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}
