package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		on := &stubFeature{name: "products", enabled: true}
		off := &stubFeature{name: "dashboard"}

		m := NewManager(nil)
		m.Register(on)
		m.Register(off)

		require.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, m.Features(), 2)
	})

	t.Run("PropagatesError", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(&stubFeature{name: "orders", enabled: true, err: errors.New("boom")})

		err := m.LoadAll(fiber.New())
		assert.EqualError(t, err, `failed to load feature "orders": boom`)
	})

	t.Run("RejectsDuplicates", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(&stubFeature{name: "orders", enabled: true})
		m.Register(&stubFeature{name: "orders", enabled: true})

		assert.EqualError(t, m.LoadAll(fiber.New()), `feature "orders" registered twice`)
	})
}
