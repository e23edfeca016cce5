package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableColors(t *testing.T) {
	tests := []struct {
		codes []Code
		want  []Color
	}{
		{codes: []Code{Code01, Code02}, want: []Color{ColorBlack, ColorWhite, ColorGreen}},
		{codes: []Code{Code03, Code04, Code05, Code06}, want: []Color{ColorBlack}},
		{codes: []Code{Code07, Code08}, want: []Color{ColorBlack, ColorNavy}},
	}

	for _, tt := range tests {
		for _, code := range tt.codes {
			assert.ElementsMatch(t, tt.want, AvailableColors(code), "code %s", code)
		}
	}
}

func TestAvailableSleeves(t *testing.T) {
	for _, code := range []Code{Code01, Code02, Code03, Code04, Code05, Code06} {
		assert.ElementsMatch(t, []Sleeve{SleeveShort, SleeveLong}, AvailableSleeves(code), "code %s", code)
	}
	for _, code := range []Code{Code07, Code08} {
		assert.Equal(t, []Sleeve{SleeveLong}, AvailableSleeves(code), "code %s", code)
	}
}

func TestAvailability_UnknownCode(t *testing.T) {
	for _, code := range []Code{"", "00", "09", "1"} {
		assert.Empty(t, AvailableColors(code))
		assert.Empty(t, AvailableSleeves(code))
		assert.False(t, ColorAvailable(code, ColorBlack))
		assert.False(t, SleeveAvailable(code, SleeveLong))
	}
}

func TestAvailableColors_ReturnsCopy(t *testing.T) {
	colors := AvailableColors(Code01)
	colors[0] = ColorNavy

	assert.Equal(t, ColorBlack, AvailableColors(Code01)[0])
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, Code07, ParseCode("07"))
	assert.Equal(t, Code(""), ParseCode("7"))
	assert.Equal(t, ColorNavy, ParseColor("navy"))
	assert.Equal(t, Color(""), ParseColor("merah"))
	assert.Equal(t, SleeveLong, ParseSleeve("panjang"))
	assert.Equal(t, Sleeve(""), ParseSleeve("long"))
	assert.Equal(t, Size3XL, ParseSize("3XL"))
	assert.Equal(t, Size(""), ParseSize("xs"))
}
