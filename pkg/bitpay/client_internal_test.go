package bitpay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicToken(t *testing.T) {
	// base64("abc: ")
	require.Equal(t, "YWJjOiA=", basicToken("abc"))
	require.Equal(t, "OiA=", basicToken(""))
}

func TestNewClientBaseURL(t *testing.T) {
	tests := []struct {
		baseURL  string
		expected string
	}{
		{"", "/"},
		{"https://bitpay.com/api", "https://bitpay.com/api/"},
		{"https://bitpay.com/api/", "https://bitpay.com/api/"},
		{"https://bitpay.com/api//", "https://bitpay.com/api/"},
	}

	for _, tt := range tests {
		c := NewClient("key", WithBaseURL(tt.baseURL))
		require.Equal(t, tt.expected, c.baseURL)
	}

	require.Equal(t, DefaultBaseURL, NewClient("key").baseURL)
}
