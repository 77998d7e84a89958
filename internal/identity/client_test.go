package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifyRestaurantDeleted(t *testing.T) {
	var gotMethod, gotPath string
	var gotClaim domain.Identity

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("X-User")), &gotClaim))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop().Sugar())

	err := client.NotifyRestaurantDeleted(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/auth/delete/restaurant", gotPath)
	require.Equal(t, "u1", gotClaim.ID)
	require.Equal(t, domain.RoleRestaurant, gotClaim.Role)
}

func TestNotifyRestaurantDeletedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop().Sugar())

	err := client.NotifyRestaurantDeleted(context.Background(), "u1")
	require.Error(t, err)
}
