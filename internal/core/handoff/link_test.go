package handoff

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"a b":              "a%20b",
		"Nama: Budi\n":     "Nama%3A%20Budi%0A",
		"-_.!~*'()":        "-_.!~*'()",
		"a+b&c=d/e?f#g":    "a%2Bb%26c%3Dd%2Fe%3Ff%23g",
		"⚫":                "%E2%9A%AB",
		"%21":              "%2521",
		"ABCxyz0189":       "ABCxyz0189",
	}

	for in, want := range tests {
		assert.Equal(t, want, EncodeURIComponent(in), "input %q", in)
	}
}

func TestWhatsAppURL(t *testing.T) {
	msg := fixedComposer().Compose(budiForm())

	link := WhatsAppURL(msg)

	require.True(t, strings.HasPrefix(link, "https://wa.me/6285184666545?text="))
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/6285184666545", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"))
	assert.NotContains(t, u.RawQuery, "+")
}

func TestNew(t *testing.T) {
	h := New("hello world")

	assert.Equal(t, "hello world", h.Message)
	assert.Equal(t, "https://wa.me/6285184666545?text=hello%20world", h.URL)
	assert.Equal(t, Notice, h.Notice)
	assert.Equal(t, NoticeDelay, h.NoticeDelay)
}
