package domain

import "errors"

var (
	ErrMissingContactInfo = errors.New("missing contact info")
	ErrNoValidProducts    = errors.New("no valid products")
)

const (
	MsgMissingContactInfo = "Mohon lengkapi nama dan nomor telepon!"
	MsgNoValidProducts    = "Mohon lengkapi minimal satu produk!"
)

// UserMessage returns the text shown to the customer for a validation
// failure, or the empty string when err is not one.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingContactInfo):
		return MsgMissingContactInfo
	case errors.Is(err, ErrNoValidProducts):
		return MsgNoValidProducts
	default:
		return ""
	}
}
