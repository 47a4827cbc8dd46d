package qr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataBuildsVerifyURL(t *testing.T) {
	svc := New("https://trace.safebite.io")

	payload := svc.Data(42)
	assert.Equal(t, uint64(42), payload.ProductID)
	assert.Equal(t, "https://trace.safebite.io/verify/42", payload.VerifyURL)
}

func TestDataTrimsTrailingSlash(t *testing.T) {
	svc := New("http://localhost:5173/")

	payload := svc.Data(7)
	assert.Equal(t, "http://localhost:5173/verify/7", payload.VerifyURL)
}

func TestPNGEncodesPayload(t *testing.T) {
	svc := New("http://localhost:5173")

	png, err := svc.PNG(7)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestDataURLEmbedsPNG(t *testing.T) {
	svc := New("http://localhost:5173")

	url, err := svc.DataURL(7)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0x89, 'P', 'N', 'G'}))
}

func TestPayloadJSONShape(t *testing.T) {
	raw, err := json.Marshal(Payload{ProductID: 3, VerifyURL: "http://x/verify/3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":3,"verifyUrl":"http://x/verify/3"}`, string(raw))
}
