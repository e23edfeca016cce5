package domain

import "time"

// IDFunc generates line item identifiers.
type IDFunc func() string

// OrderForm is the order being filled in by one customer. It always holds at
// least one line item.
type OrderForm struct {
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone"`
	Notes        string     `json:"notes"`
	Items        []LineItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewOrderForm(newID IDFunc, now time.Time) *OrderForm {
	return &OrderForm{
		Items:     []LineItem{NewLineItem(newID())},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem appends a blank line item and returns it.
func (f *OrderForm) AddItem(newID IDFunc) LineItem {
	item := NewLineItem(newID())
	f.Items = append(f.Items, item)
	return item
}

// RemoveItem deletes the item with the given id. The last remaining item is
// never removed; false is returned in that case and when id is unknown.
func (f *OrderForm) RemoveItem(id string) bool {
	if !f.CanRemove() {
		return false
	}
	for i, it := range f.Items {
		if it.ID == id {
			f.Items = append(f.Items[:i:i], f.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (f *OrderForm) CanRemove() bool {
	return len(f.Items) > 1
}

// UpdateItem merges u into the item with the given id. Unknown ids are
// ignored.
func (f *OrderForm) UpdateItem(id string, u ItemUpdate) (LineItem, bool) {
	for i, it := range f.Items {
		if it.ID == id {
			f.Items[i] = it.Apply(u)
			return f.Items[i], true
		}
	}
	return LineItem{}, false
}

func (f *OrderForm) Item(id string) (LineItem, bool) {
	for _, it := range f.Items {
		if it.ID == id {
			return it, true
		}
	}
	return LineItem{}, false
}

func (f *OrderForm) SetCustomerName(name string) {
	f.CustomerName = name
}

// SetPhone stores the normalized form of raw.
func (f *OrderForm) SetPhone(raw string) {
	f.Phone = NormalizePhone(raw)
}

func (f *OrderForm) SetNotes(notes string) {
	f.Notes = notes
}

// ValidItems returns the complete line items in form order.
func (f *OrderForm) ValidItems() []LineItem {
	var out []LineItem
	for _, it := range f.Items {
		if it.IsValid() {
			out = append(out, it)
		}
	}
	return out
}

func (f *OrderForm) HasContactInfo() bool {
	return f.CustomerName != "" && f.Phone != ""
}

func (f *OrderForm) IsValid() bool {
	return f.Validate() == nil
}

// Validate checks the submission preconditions in the order the customer is
// told about them: contact details first, then products.
func (f *OrderForm) Validate() error {
	if !f.HasContactInfo() {
		return ErrMissingContactInfo
	}
	if len(f.ValidItems()) == 0 {
		return ErrNoValidProducts
	}
	return nil
}

func TotalQuantity(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
