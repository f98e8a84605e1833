package auth_client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth_client "feedwatch/internal/clients/auth"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
)

func TestHTTPProvider_SignIn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/token", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ann", req["username"])
			assert.Equal(t, "s3cret", req["password"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"accessToken": "tok-xyz",
				"userId":      "u1",
				"expiresIn":   3600,
			})
		}))
		t.Cleanup(server.Close)

		provider := auth_client.NewHTTPProvider(server.URL, time.Second, logger.New("test"))
		cred, err := provider.SignIn(context.Background(), "ann", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "tok-xyz", cred.AccessToken)
		assert.Equal(t, "u1", cred.UserID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), cred.ExpiresAt, 10*time.Second)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		provider := auth_client.NewHTTPProvider(server.URL, time.Second, logger.New("test"))
		_, err := provider.SignIn(context.Background(), "ann", "wrong")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCredentials)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": ""})
		}))
		t.Cleanup(server.Close)

		provider := auth_client.NewHTTPProvider(server.URL, time.Second, logger.New("test"))
		_, err := provider.SignIn(context.Background(), "ann", "s3cret")
		assert.ErrorIs(t, err, custom_errors.ErrExternalServiceError)
	})

	t.Run("ProviderDown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		provider := auth_client.NewHTTPProvider(server.URL, time.Second, logger.New("test"))
		_, err := provider.SignIn(context.Background(), "ann", "s3cret")
		assert.ErrorIs(t, err, custom_errors.ErrExternalServiceError)
	})
}
