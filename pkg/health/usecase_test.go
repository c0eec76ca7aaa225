package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndanilchenko/tasktrack/pkg/health"
)

type fakeChecker struct {
	name string
	err  error
}

func (c fakeChecker) Name() string                    { return c.name }
func (c fakeChecker) Check(ctx context.Context) error { return c.err }

func TestReady(t *testing.T) {
	ctx := context.Background()

	t.Run("all checkers pass", func(t *testing.T) {
		svc := health.NewService(fakeChecker{name: "a"}, fakeChecker{name: "b"})
		assert.NoError(t, svc.Ready(ctx))
	})

	t.Run("first failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		svc := health.NewService(fakeChecker{name: "a"}, fakeChecker{name: "b", err: boom})
		assert.ErrorIs(t, svc.Ready(ctx), boom)
	})

	t.Run("no checkers is trivially ready", func(t *testing.T) {
		assert.NoError(t, health.NewService().Ready(ctx))
	})
}
