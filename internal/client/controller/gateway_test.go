package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/infras/otel/mocks"
	"todolist/internal/client/api"
	"todolist/internal/client/controller"
)

// Writes answered with 200 and no body still count as confirmed.
func TestList_BodylessSuccessConfirmsWrites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"title":"Buy milk","completed":false,"createdAt":"2024-05-01T08:00:00Z","updatedAt":"2024-05-01T08:00:00Z"}]`))

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := api.NewWithHTTPClient(server.URL, "", server.Client(), mocks.NewOtel())
	list := controller.NewList(client)

	require.NoError(t, list.Load(context.Background()))
	require.Len(t, list.Items(), 1)

	item := list.Items()[0]

	require.NoError(t, item.Toggle(context.Background()))
	assert.True(t, item.State().Completed)
	assert.False(t, item.State().Loading)

	require.NoError(t, item.BeginEdit())
	require.NoError(t, item.SetDraft("Buy oat milk"))
	require.NoError(t, item.CommitEdit(context.Background()))
	assert.Equal(t, "Buy oat milk", item.State().Title)

	require.NoError(t, item.Delete(context.Background()))
	assert.Empty(t, list.Items())
}
