package handler

import (
	"encoding/json"
	"strings"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/handoff"
)

type SessionResponse struct {
	SessionID string   `json:"session_id"`
	Form      FormView `json:"form"`
}

type FormView struct {
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	Notes        string         `json:"notes"`
	Items        []LineItemView `json:"items"`
	CanRemove    bool           `json:"can_remove"`
	Valid        bool           `json:"valid"`
}

type LineItemView struct {
	domain.LineItem
	Number           int             `json:"number"`
	Valid            bool            `json:"valid"`
	AvailableColors  []domain.Color  `json:"available_colors"`
	AvailableSleeves []domain.Sleeve `json:"available_sleeves"`
}

type UpdateItemRequest struct {
	Code     *string         `json:"code,omitempty"`
	Color    *string         `json:"color,omitempty"`
	Sleeve   *string         `json:"sleeve,omitempty"`
	Size     *string         `json:"size,omitempty"`
	Quantity json.RawMessage `json:"quantity,omitempty"`
}

type UpdateCustomerRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type RemoveItemResponse struct {
	Removed bool     `json:"removed"`
	Form    FormView `json:"form"`
}

type HandoffResponse struct {
	Message       string `json:"message"`
	URL           string `json:"url"`
	Notice        string `json:"notice"`
	NoticeDelayMS int64  `json:"notice_delay_ms"`
}

type CatalogResponse struct {
	Codes       []CodeView                     `json:"codes"`
	Colors      []domain.Option[domain.Color]  `json:"colors"`
	Sleeves     []domain.Option[domain.Sleeve] `json:"sleeves"`
	Sizes       []domain.Option[domain.Size]   `json:"sizes"`
	ProductInfo []string                       `json:"product_info"`
}

type CodeView struct {
	Code    domain.Code     `json:"code"`
	Label   string          `json:"label"`
	Colors  []domain.Color  `json:"colors"`
	Sleeves []domain.Sleeve `json:"sleeves"`
}

type SizeChartResponse struct {
	Rows  []domain.SizeChartRow `json:"rows"`
	Guide []string              `json:"guide"`
	Tip   string                `json:"tip"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// toUpdate converts the request into a domain edit. Values outside the
// catalog are dropped; the empty string clears a field. A null quantity
// counts as absent.
func (r UpdateItemRequest) toUpdate() domain.ItemUpdate {
	var u domain.ItemUpdate
	u.Code = parsed(r.Code, domain.ParseCode)
	u.Color = parsed(r.Color, domain.ParseColor)
	u.Sleeve = parsed(r.Sleeve, domain.ParseSleeve)
	u.Size = parsed(r.Size, domain.ParseSize)
	if len(r.Quantity) > 0 && string(r.Quantity) != "null" {
		q := parseRawQuantity(r.Quantity)
		u.Quantity = &q
	}
	return u
}

func parsed[T ~string](raw *string, parse func(string) T) *T {
	if raw == nil {
		return nil
	}
	v := parse(*raw)
	if v == "" && *raw != "" {
		return nil
	}
	return &v
}

// parseRawQuantity accepts a JSON number or string; anything unusable is 1.
func parseRawQuantity(raw json.RawMessage) int {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.ParseQuantity(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.ParseQuantity(strings.TrimSpace(n.String()))
	}
	return domain.DefaultQuantity
}

func mapForm(f *domain.OrderForm) FormView {
	items := make([]LineItemView, len(f.Items))
	for i, it := range f.Items {
		items[i] = LineItemView{
			LineItem:         it,
			Number:           i + 1,
			Valid:            it.IsValid(),
			AvailableColors:  domain.AvailableColors(it.Code),
			AvailableSleeves: domain.AvailableSleeves(it.Code),
		}
	}
	return FormView{
		CustomerName: f.CustomerName,
		Phone:        f.Phone,
		Notes:        f.Notes,
		Items:        items,
		CanRemove:    f.CanRemove(),
		Valid:        f.IsValid(),
	}
}

func mapHandoff(h handoff.Handoff) HandoffResponse {
	return HandoffResponse{
		Message:       h.Message,
		URL:           h.URL,
		Notice:        h.Notice,
		NoticeDelayMS: h.NoticeDelay.Milliseconds(),
	}
}

func catalog() CatalogResponse {
	codes := make([]CodeView, len(domain.CodeOptions))
	for i, o := range domain.CodeOptions {
		codes[i] = CodeView{
			Code:    o.Value,
			Label:   o.Label,
			Colors:  domain.AvailableColors(o.Value),
			Sleeves: domain.AvailableSleeves(o.Value),
		}
	}
	return CatalogResponse{
		Codes:       codes,
		Colors:      domain.ColorOptions,
		Sleeves:     domain.SleeveOptions,
		Sizes:       domain.SizeOptions,
		ProductInfo: domain.ProductInfo,
	}
}
