package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/kaos-order/internal/core/domain"
)

var errItemFormat = errors.New("want code:color:sleeve:size[:quantity]")

type itemFlags []domain.ItemUpdate

func (f *itemFlags) String() string {
	return fmt.Sprintf("%d items", len(*f))
}

func (f *itemFlags) Set(v string) error {
	u, err := parseItem(v)
	if err != nil {
		return err
	}
	*f = append(*f, u)
	return nil
}

// parseItem reads "code:color:sleeve:size[:quantity]". Values outside the
// catalog are rejected here rather than silently dropped by the form.
func parseItem(v string) (domain.ItemUpdate, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 4 || len(parts) > 5 {
		return domain.ItemUpdate{}, fmt.Errorf("item %q: %w", v, errItemFormat)
	}

	code := domain.ParseCode(parts[0])
	color := domain.ParseColor(strings.ToLower(parts[1]))
	sleeve := domain.ParseSleeve(strings.ToLower(parts[2]))
	size := domain.ParseSize(strings.ToUpper(parts[3]))
	switch {
	case code == "":
		return domain.ItemUpdate{}, fmt.Errorf("item %q: unknown code %q", v, parts[0])
	case !domain.ColorAvailable(code, color):
		return domain.ItemUpdate{}, fmt.Errorf("item %q: color %q not available for code %s", v, parts[1], code)
	case !domain.SleeveAvailable(code, sleeve):
		return domain.ItemUpdate{}, fmt.Errorf("item %q: sleeve %q not available for code %s", v, parts[2], code)
	case size == "":
		return domain.ItemUpdate{}, fmt.Errorf("item %q: unknown size %q", v, parts[3])
	}

	qty := domain.DefaultQuantity
	if len(parts) == 5 {
		qty = domain.ParseQuantity(parts[4])
	}
	return domain.ItemUpdate{
		Code:     &code,
		Color:    &color,
		Sleeve:   &sleeve,
		Size:     &size,
		Quantity: &qty,
	}, nil
}
