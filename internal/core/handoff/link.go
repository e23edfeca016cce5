package handoff

import (
	"net/url"
	"strings"
	"time"
)

const (
	WhatsAppHost = "wa.me"
	// Recipient is the vendor's WhatsApp number.
	Recipient = "6285184666545"

	Notice      = "Form berhasil dikirim! WhatsApp akan terbuka dalam tab baru.\n\nJika WhatsApp tidak terbuka otomatis, silakan copy pesan dan kirim manual."
	NoticeDelay = 500 * time.Millisecond
)

// Handoff is everything needed to pass an order to the vendor.
type Handoff struct {
	Message     string        `json:"message"`
	URL         string        `json:"url"`
	Notice      string        `json:"notice"`
	NoticeDelay time.Duration `json:"notice_delay"`
}

func New(message string) Handoff {
	return Handoff{
		Message:     message,
		URL:         WhatsAppURL(message),
		Notice:      Notice,
		NoticeDelay: NoticeDelay,
	}
}

// WhatsAppURL builds the click-to-chat link with text pre-filled.
func WhatsAppURL(text string) string {
	return "https://" + WhatsAppHost + "/" + Recipient + "?text=" + EncodeURIComponent(text)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers do for a URI
// component: UTF-8 bytes are escaped except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
