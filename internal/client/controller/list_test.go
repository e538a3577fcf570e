package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"todolist/internal/client/controller"
	"todolist/internal/client/mocks"
	"todolist/internal/domains/todo/model/dto"
)

func ids(items []*controller.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}

	return out
}

func TestList_Load(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	assert.False(t, list.Ready())

	gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{
		{ID: 3, Title: "newest"},
		{ID: 2, Title: "middle", Completed: true},
		{ID: 1, Title: "oldest"},
	}, nil)

	require.NoError(t, list.Load(context.Background()))

	assert.True(t, list.Ready())
	assert.Equal(t, []int64{3, 2, 1}, ids(list.Items()))
	assert.True(t, list.Items()[1].State().Completed)
}

func TestList_LoadFailureOnMount(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	gateway.EXPECT().List(gomock.Any()).Return(nil, errNetwork)

	assert.ErrorIs(t, list.Load(context.Background()), errNetwork)
	assert.True(t, list.Ready())
	assert.Empty(t, list.Items())
}

func TestList_ReloadReplacesCollection(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	gomock.InOrder(
		gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 1}, {ID: 2}}, nil),
		gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 3}, {ID: 1}}, nil),
		gateway.EXPECT().List(gomock.Any()).Return(nil, errNetwork),
	)

	require.NoError(t, list.Load(context.Background()))
	first := list.Items()

	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, []int64{3, 1}, ids(list.Items()))
	assert.NotSame(t, first[0], list.Items()[1])

	require.Error(t, list.Load(context.Background()))
	assert.Equal(t, []int64{3, 1}, ids(list.Items()))
}

func TestList_Remove(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 4}, {ID: 3}, {ID: 2}, {ID: 1}}, nil)
	require.NoError(t, list.Load(context.Background()))

	snapshot := list.Items()

	list.Remove(3)
	assert.Equal(t, []int64{4, 2, 1}, ids(list.Items()))

	list.Remove(99)
	assert.Equal(t, []int64{4, 2, 1}, ids(list.Items()))

	assert.Equal(t, []int64{4, 3, 2, 1}, ids(snapshot))
}

func TestList_ItemDeleteRemovesFromList(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 2}, {ID: 1}}, nil)
	require.NoError(t, list.Load(context.Background()))

	gateway.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil)

	require.NoError(t, list.Items()[0].Delete(context.Background()))
	assert.Equal(t, []int64{1}, ids(list.Items()))
}

func TestList_ReloadInFlightDuringDelete(t *testing.T) {
	gateway := mocks.NewMockGateway(gomock.NewController(t))
	list := controller.NewList(gateway)

	gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 2}, {ID: 1}}, nil)
	require.NoError(t, list.Load(context.Background()))

	doomed := list.Items()[0]

	gateway.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil)
	gateway.EXPECT().List(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]dto.TodoResponse, error) {
		// The listing was read before the delete was confirmed.
		require.NoError(t, doomed.Delete(ctx))

		return []dto.TodoResponse{{ID: 2}, {ID: 1}}, nil
	})

	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, []int64{1}, ids(list.Items()))

	gateway.EXPECT().List(gomock.Any()).Return([]dto.TodoResponse{{ID: 3}, {ID: 2}, {ID: 1}}, nil)
	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, []int64{3, 1}, ids(list.Items()))
}
