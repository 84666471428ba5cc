package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("secret", false)

	value, err := codec.Encode("sid-123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", id)
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec("secret", false)

	value, err := codec.Encode("sid-123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = codec.Decode(value + "x")
	assert.Error(t, err)
}

func TestCookieCodecRejectsForeignSecret(t *testing.T) {
	other := NewCookieCodec("other-secret", false)
	value, err := other.Encode("sid-123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	codec := NewCookieCodec("secret", false)
	_, err = codec.Decode(value)
	assert.Error(t, err)
}

func TestCookieCodecRejectsExpired(t *testing.T) {
	codec := NewCookieCodec("secret", false)

	value, err := codec.Encode("sid-123", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Decode(value)
	assert.Error(t, err)
}

func TestCookieFlags(t *testing.T) {
	for _, tc := range []struct {
		name   string
		secure bool
	}{
		{"production mode sets secure", true},
		{"development mode leaves secure off", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			codec := NewCookieCodec("secret", tc.secure)

			w := httptest.NewRecorder()
			codec.SetCookie(w, "value", time.Now().Add(time.Hour))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, CookieName, cookies[0].Name)
			assert.True(t, cookies[0].HttpOnly, "HttpOnly is unconditional")
			assert.Equal(t, tc.secure, cookies[0].Secure)
		})
	}
}
