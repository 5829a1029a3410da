package ports_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/faststring/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestVertexContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	v := mocks.NewMockVertex(ctrl)

	_, ok := ports.VertexFromContext(context.Background())
	assert.False(t, ok)

	ctx := ports.ContextWithVertex(context.Background(), v)
	got, ok := ports.VertexFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, v, got)
}
