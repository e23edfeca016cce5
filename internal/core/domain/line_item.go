package domain

import (
	"strconv"
	"strings"
)

const DefaultQuantity = 1

type LineItem struct {
	ID       string `json:"id"`
	Code     Code   `json:"code"`
	Color    Color  `json:"color"`
	Sleeve   Sleeve `json:"sleeve"`
	Size     Size   `json:"size"`
	Quantity int    `json:"quantity"`
}

func NewLineItem(id string) LineItem {
	return LineItem{ID: id, Quantity: DefaultQuantity}
}

// IsValid reports whether every field is chosen and the quantity is positive.
func (li LineItem) IsValid() bool {
	return li.Code != "" && li.Color != "" && li.Sleeve != "" && li.Size != "" && li.Quantity > 0
}

// WithCode sets the product code and drops the color and sleeve when the new
// code no longer permits them. A code with a single permitted sleeve gets
// that sleeve assigned.
func (li LineItem) WithCode(code Code) LineItem {
	li.Code = code

	if !ColorAvailable(code, li.Color) {
		li.Color = ""
	}

	if !SleeveAvailable(code, li.Sleeve) {
		li.Sleeve = ""
		if sleeves := AvailableSleeves(code); len(sleeves) == 1 {
			li.Sleeve = sleeves[0]
		}
	}

	return li
}

// ItemUpdate carries the fields of a partial line item edit. Nil fields are
// left untouched.
type ItemUpdate struct {
	Code     *Code   `json:"code,omitempty"`
	Color    *Color  `json:"color,omitempty"`
	Sleeve   *Sleeve `json:"sleeve,omitempty"`
	Size     *Size   `json:"size,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

// Apply merges u into li. The code is applied first so that a color or
// sleeve sent together with it is checked against the new code. Colors and
// sleeves the code does not offer are ignored, as are unknown sizes; any of
// them may be cleared with the empty value.
func (li LineItem) Apply(u ItemUpdate) LineItem {
	if u.Code != nil {
		li = li.WithCode(*u.Code)
	}
	if u.Color != nil && (*u.Color == "" || ColorAvailable(li.Code, *u.Color)) {
		li.Color = *u.Color
	}
	if u.Sleeve != nil && (*u.Sleeve == "" || SleeveAvailable(li.Code, *u.Sleeve)) {
		li.Sleeve = *u.Sleeve
	}
	if u.Size != nil && (*u.Size == "" || ParseSize(string(*u.Size)) != "") {
		li.Size = *u.Size
	}
	if u.Quantity != nil {
		li.Quantity = CoerceQuantity(*u.Quantity)
	}
	return li
}

// ParseQuantity converts raw user input into a quantity. Only the leading
// integer is read ("3 pcs" is 3); input without one, or a value below 1,
// becomes 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return DefaultQuantity
	}
	return CoerceQuantity(n)
}

func CoerceQuantity(n int) int {
	if n <= 0 {
		return DefaultQuantity
	}
	return n
}
