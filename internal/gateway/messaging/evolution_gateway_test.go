package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMessageID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain key untouched", in: "3EB0C1A2D94B", want: "3EB0C1A2D94B"},
		{name: "jid prefix stripped", in: "false_5511999999999@s.whatsapp.net_3EB0C1A2", want: "3EB0C1A2"},
		{name: "whitespace trimmed", in: "  3EB0C1A2  ", want: "3EB0C1A2"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMessageID(tt.in))
		})
	}
}

func TestIsInstanceConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/connectionState/inst-1", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"instance": map[string]string{"state": "open"},
		})
	}))
	defer srv.Close()

	g := NewEvolutionGateway(srv.URL, "secret")
	connected, err := g.IsInstanceConnected(context.Background(), "inst-1")

	assert.NoError(t, err)
	assert.True(t, connected)
}

func TestIsInstanceConnectedClosedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"instance": map[string]string{"state": "connecting"},
		})
	}))
	defer srv.Close()

	g := NewEvolutionGateway(srv.URL, "secret")
	connected, err := g.IsInstanceConnected(context.Background(), "inst-1")

	assert.NoError(t, err)
	assert.False(t, connected)
}

func TestSendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/message/sendText/inst-1", r.URL.Path)

		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "5511988887777", payload["number"])
		assert.Equal(t, "hello", payload["text"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"key": map[string]string{"id": "false_5511988887777@s.whatsapp.net_3EB0AA11"},
		})
	}))
	defer srv.Close()

	g := NewEvolutionGateway(srv.URL, "secret")
	res, err := g.SendText(context.Background(), "inst-1", "5511988887777", "hello")

	assert.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, "3EB0AA11", res.VendorMessageId)
}

func TestSendTextRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("number not on whatsapp"))
	}))
	defer srv.Close()

	g := NewEvolutionGateway(srv.URL, "secret")
	res, err := g.SendText(context.Background(), "inst-1", "000", "hello")

	assert.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Equal(t, 400, res.AckCode)
}
