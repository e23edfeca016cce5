package domain

type Code string

const (
	Code01 Code = "01"
	Code02 Code = "02"
	Code03 Code = "03"
	Code04 Code = "04"
	Code05 Code = "05"
	Code06 Code = "06"
	Code07 Code = "07"
	Code08 Code = "08"
)

type Color string

const (
	ColorBlack Color = "hitam"
	ColorWhite Color = "putih"
	ColorGreen Color = "hijau"
	ColorNavy  Color = "navy"
)

type Sleeve string

const (
	SleeveShort Sleeve = "pendek"
	SleeveLong  Sleeve = "panjang"
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
	Size3XL Size = "3XL"
	Size4XL Size = "4XL"
	Size5XL Size = "5XL"
)

type Option[T ~string] struct {
	Value T      `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

var (
	CodeOptions = []Option[Code]{
		{Value: Code01, Label: "Kode 01"},
		{Value: Code02, Label: "Kode 02"},
		{Value: Code03, Label: "Kode 03"},
		{Value: Code04, Label: "Kode 04"},
		{Value: Code05, Label: "Kode 05"},
		{Value: Code06, Label: "Kode 06"},
		{Value: Code07, Label: "Kode 07"},
		{Value: Code08, Label: "Kode 08"},
	}

	ColorOptions = []Option[Color]{
		{Value: ColorBlack, Label: "Hitam", Emoji: "⚫"},
		{Value: ColorWhite, Label: "Putih", Emoji: "⚪"},
		{Value: ColorGreen, Label: "Hijau", Emoji: "🟢"},
		{Value: ColorNavy, Label: "Navy", Emoji: "🔵"},
	}

	SleeveOptions = []Option[Sleeve]{
		{Value: SleeveShort, Label: "Lengan Pendek"},
		{Value: SleeveLong, Label: "Lengan Panjang"},
	}

	SizeOptions = []Option[Size]{
		{Value: SizeS, Label: "S (Small)"},
		{Value: SizeM, Label: "M (Medium)"},
		{Value: SizeL, Label: "L (Large)"},
		{Value: SizeXL, Label: "XL (Extra Large)"},
		{Value: SizeXXL, Label: "XXL (Double XL)"},
		{Value: Size3XL, Label: "3XL (Triple XL)"},
		{Value: Size4XL, Label: "4XL (Quad XL)"},
		{Value: Size5XL, Label: "5XL (Penta XL)"},
	}

	// ProductInfo is the fixed product information shown above the form.
	ProductInfo = []string{
		"Kode 01-02: Kaos tersedia warna Hitam, Putih, Hijau (lengan panjang/pendek)",
		"Kode 03-06: Kaos hanya tersedia warna Hitam (lengan panjang/pendek)",
		"Kode 07-08: Sweater tersedia warna Hitam, Navy (hanya lengan panjang)",
	}
)

type availability struct {
	colors  []Color
	sleeves []Sleeve
}

var (
	bothSleeves = []Sleeve{SleeveShort, SleeveLong}

	rules = map[Code]availability{
		Code01: {colors: []Color{ColorBlack, ColorWhite, ColorGreen}, sleeves: bothSleeves},
		Code02: {colors: []Color{ColorBlack, ColorWhite, ColorGreen}, sleeves: bothSleeves},
		Code03: {colors: []Color{ColorBlack}, sleeves: bothSleeves},
		Code04: {colors: []Color{ColorBlack}, sleeves: bothSleeves},
		Code05: {colors: []Color{ColorBlack}, sleeves: bothSleeves},
		Code06: {colors: []Color{ColorBlack}, sleeves: bothSleeves},
		// 07 and 08 are sweaters, long sleeve only
		Code07: {colors: []Color{ColorBlack, ColorNavy}, sleeves: []Sleeve{SleeveLong}},
		Code08: {colors: []Color{ColorBlack, ColorNavy}, sleeves: []Sleeve{SleeveLong}},
	}
)

// AvailableColors returns the colors permitted for code. Unknown or empty
// codes permit nothing.
func AvailableColors(code Code) []Color {
	r, ok := rules[code]
	if !ok {
		return nil
	}
	return append([]Color(nil), r.colors...)
}

// AvailableSleeves returns the sleeve types permitted for code.
func AvailableSleeves(code Code) []Sleeve {
	r, ok := rules[code]
	if !ok {
		return nil
	}
	return append([]Sleeve(nil), r.sleeves...)
}

func ColorAvailable(code Code, color Color) bool {
	for _, c := range rules[code].colors {
		if c == color {
			return true
		}
	}
	return false
}

func SleeveAvailable(code Code, sleeve Sleeve) bool {
	for _, s := range rules[code].sleeves {
		if s == sleeve {
			return true
		}
	}
	return false
}

// ParseCode returns the matching code, or the empty code for anything that is
// not one of the enumerated values.
func ParseCode(s string) Code {
	return parseOption(CodeOptions, s)
}

func ParseColor(s string) Color {
	return parseOption(ColorOptions, s)
}

func ParseSleeve(s string) Sleeve {
	return parseOption(SleeveOptions, s)
}

func ParseSize(s string) Size {
	return parseOption(SizeOptions, s)
}

func parseOption[T ~string](opts []Option[T], s string) T {
	for _, o := range opts {
		if string(o.Value) == s {
			return o.Value
		}
	}
	return ""
}
