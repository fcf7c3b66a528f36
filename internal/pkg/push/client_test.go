package push

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/consts"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendRoutesByDeviceType(t *testing.T) {
	var got []string
	var body Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(config.PushConfig{
		IOSURL:     srv.URL + "/ios",
		AndroidURL: srv.URL + "/android",
		ApiKey:     "secret",
	})

	ctx := context.Background()
	require.NoError(t, client.Send(ctx, consts.DeviceTypeIOS, &Message{Token: "a", Title: "t"}))
	require.NoError(t, client.Send(ctx, consts.DeviceTypeAndroid, &Message{Token: "b", Title: "t"}))
	assert.Equal(t, []string{"/ios", "/android"}, got)
	assert.Equal(t, "b", body.Token)

	assert.Error(t, client.Send(ctx, 9, &Message{}))
}

func TestClientSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.PushConfig{IOSURL: srv.URL})
	assert.Error(t, client.Send(context.Background(), consts.DeviceTypeIOS, &Message{}))
	assert.Error(t, client.Send(context.Background(), consts.DeviceTypeAndroid, &Message{}))
}
