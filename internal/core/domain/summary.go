package domain

// Summary is the read-only order overview shown while the form is edited.
type Summary struct {
	CustomerName  string     `json:"customer_name"`
	Phone         string     `json:"phone"`
	Notes         string     `json:"notes,omitempty"`
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
}

// BuildSummary projects f into a Summary. The second result is false when
// there is nothing to show yet: no name, no phone, or no complete item.
func BuildSummary(f *OrderForm) (Summary, bool) {
	valid := f.ValidItems()
	if !f.HasContactInfo() || len(valid) == 0 {
		return Summary{}, false
	}
	return Summary{
		CustomerName:  f.CustomerName,
		Phone:         f.Phone,
		Notes:         f.Notes,
		Items:         valid,
		TotalQuantity: TotalQuantity(valid),
	}, true
}
