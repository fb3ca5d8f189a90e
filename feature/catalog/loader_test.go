package catalog

import (
	"testing"

	"resource-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	svc := NewService(newTestDBStore(t), &stubFetcher{}, reconcile.Config{}, nil, zap.NewNop())
	feature := NewFeature(svc, Config{})

	assert.Equal(t, "catalog", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
