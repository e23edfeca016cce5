package handler

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/service"
)

const (
	sessionCookie    = "kaos_session"
	phonePlaceholder = "Contoh: 085123456789"

	actionAdd    = "add"
	actionSubmit = "submit"
	actionRemove = "remove:"
)

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(pageSource))

type choice struct {
	Value    string
	Label    string
	Selected bool
}

type itemField struct {
	ID             string
	Number         int
	Quantity       int
	Valid          bool
	Codes          []choice
	Colors         []choice
	Sleeves        []choice
	Sizes          []choice
	ColorDisabled  bool
	SleeveDisabled bool
}

type pageData struct {
	Form             FormView
	Items            []itemField
	Summary          *domain.Summary
	ProductInfo      []string
	SizeChart        []domain.SizeChartRow
	SizeGuide        []string
	SizeTip          string
	PhonePlaceholder string
	Alert            string
	Handoff          HandoffResponse
}

// FormPage renders the order form of the session named by the cookie,
// starting a new session when there is none.
func (h *HTTPHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	sessionID, form, err := h.currentSession(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, sessionID, form, "")
}

// FormAction saves every posted field and then performs the requested
// action: save, add, remove:<item id> or submit.
func (h *HTTPHandler) FormAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sessionID, form, err := h.currentSession(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	ctx := r.Context()
	if _, err := h.orderService.UpdateCustomer(ctx, sessionID, customerFields(r.PostForm)); err != nil {
		h.renderError(w, r, err)
		return
	}
	for _, it := range form.Items {
		u, ok := itemFields(r.PostForm, it.ID)
		if !ok {
			continue
		}
		if _, err := h.orderService.UpdateItem(ctx, sessionID, it.ID, u); err != nil && !errors.Is(err, service.ErrItemNotFound) {
			h.renderError(w, r, err)
			return
		}
	}

	action := r.PostForm.Get("action")
	switch {
	case action == actionAdd:
		_, err = h.orderService.AddItem(ctx, sessionID)
	case strings.HasPrefix(action, actionRemove):
		_, err = h.orderService.RemoveItem(ctx, sessionID, strings.TrimPrefix(action, actionRemove))
	case action == actionSubmit:
		h.submitForm(w, r, sessionID)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *HTTPHandler) submitForm(w http.ResponseWriter, r *http.Request, sessionID string) {
	result, err := h.orderService.Submit(r.Context(), sessionID)
	if msg := domain.UserMessage(err); msg != "" {
		form, ferr := h.orderService.Form(r.Context(), sessionID)
		if ferr != nil {
			h.renderError(w, r, ferr)
			return
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, sessionID, form, msg)
		return
	}
	if errors.Is(err, service.ErrAlreadySubmitted) {
		clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	clearSessionCookie(w)
	h.render(w, http.StatusOK, "sent", pageData{Handoff: mapHandoff(result)})
}

// currentSession loads the session named by the cookie. A missing or expired
// session is replaced by a new one and the cookie is reset.
func (h *HTTPHandler) currentSession(w http.ResponseWriter, r *http.Request) (string, *domain.OrderForm, error) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		form, err := h.orderService.Form(r.Context(), c.Value)
		if err == nil {
			return c.Value, form, nil
		}
		if !errors.Is(err, service.ErrSessionNotFound) {
			return "", nil, err
		}
	}

	sessionID, form, err := h.orderService.StartSession(r.Context())
	if err != nil {
		return "", nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID, form, nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *HTTPHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, sessionID string, form *domain.OrderForm, alert string) {
	data := pageData{
		Form:             mapForm(form),
		Items:            itemFieldsFor(form),
		ProductInfo:      domain.ProductInfo,
		SizeChart:        domain.SizeChart,
		SizeGuide:        domain.SizeChartGuide,
		SizeTip:          domain.SizeChartTip,
		PhonePlaceholder: phonePlaceholder,
		Alert:            alert,
	}
	if summary, ok := domain.BuildSummary(form); ok {
		data.Summary = &summary
	}
	h.logger.Debug("render form",
		zap.String("session_id", sessionID),
		zap.Int("items", len(form.Items)),
	)
	h.render(w, status, "form", data)
}

func (h *HTTPHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("form request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "Terjadi kesalahan, silakan coba lagi.", http.StatusInternalServerError)
}

func (h *HTTPHandler) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template error", zap.String("template", name), zap.Error(err))
	}
}

func customerFields(v url.Values) service.CustomerUpdate {
	return service.CustomerUpdate{
		Name:  formValue(v, "customer_name"),
		Phone: formValue(v, "phone"),
		Notes: formValue(v, "notes"),
	}
}

// itemFields reads the fields of one line item. The second result is false
// when the item was not part of the post.
func itemFields(v url.Values, id string) (domain.ItemUpdate, bool) {
	u := domain.ItemUpdate{
		Code:   parsed(formValue(v, "code_"+id), domain.ParseCode),
		Color:  parsed(formValue(v, "color_"+id), domain.ParseColor),
		Sleeve: parsed(formValue(v, "sleeve_"+id), domain.ParseSleeve),
		Size:   parsed(formValue(v, "size_"+id), domain.ParseSize),
	}
	if q := formValue(v, "quantity_"+id); q != nil {
		n := domain.ParseQuantity(*q)
		u.Quantity = &n
	}
	ok := u.Code != nil || u.Color != nil || u.Sleeve != nil || u.Size != nil || u.Quantity != nil
	return u, ok
}

func formValue(v url.Values, key string) *string {
	if _, ok := v[key]; !ok {
		return nil
	}
	s := v.Get(key)
	return &s
}

func itemFieldsFor(f *domain.OrderForm) []itemField {
	fields := make([]itemField, len(f.Items))
	for i, it := range f.Items {
		colors := domain.AvailableColors(it.Code)
		sleeves := domain.AvailableSleeves(it.Code)
		fields[i] = itemField{
			ID:             it.ID,
			Number:         i + 1,
			Quantity:       it.Quantity,
			Valid:          it.IsValid(),
			Codes:          choices(domain.CodeOptions, it.Code, nil),
			Colors:         choices(domain.ColorOptions, it.Color, colors),
			Sleeves:        choices(domain.SleeveOptions, it.Sleeve, sleeves),
			Sizes:          choices(domain.SizeOptions, it.Size, nil),
			ColorDisabled:  len(colors) == 0,
			SleeveDisabled: len(sleeves) == 0,
		}
	}
	return fields
}

// choices lists opts for a select element. A non-nil allowed narrows the list.
func choices[T ~string](opts []domain.Option[T], selected T, allowed []T) []choice {
	var out []choice
	for _, o := range opts {
		if allowed != nil && !contains(allowed, o.Value) {
			continue
		}
		label := o.Label
		if o.Emoji != "" {
			label = o.Emoji + " " + o.Label
		}
		out = append(out, choice{Value: string(o.Value), Label: label, Selected: o.Value == selected})
	}
	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

const pageSource = `
{{define "head"}}<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Form Pemesanan Kaos</title>
<style>
body{font-family:system-ui,sans-serif;max-width:720px;margin:0 auto;padding:1rem;color:#222}
fieldset{border:1px solid #ddd;border-radius:8px;margin:1rem 0;padding:1rem}
label{display:block;margin:.5rem 0 .2rem}
input,select,textarea{width:100%;padding:.4rem;box-sizing:border-box}
.info,.summary{background:#f5f7fb;border-radius:8px;padding:.8rem 1rem}
.alert{background:#fdecea;color:#8a1c1c;border-radius:8px;padding:.8rem 1rem}
.valid{border-color:#3a9b5c}
table{border-collapse:collapse;width:100%}td,th{border:1px solid #ddd;padding:.3rem;text-align:center}
</style>
</head>
<body>{{end}}

{{define "form"}}{{template "head" .}}
<h1>Form Pemesanan Kaos</h1>

<div class="info">
<strong>Informasi Produk</strong>
<ul>{{range .ProductInfo}}<li>{{.}}</li>{{end}}</ul>
</div>

{{if .Alert}}<p class="alert" role="alert">{{.Alert}}</p>{{end}}

<form method="post" action="/">
<button type="submit" name="action" value="save" hidden>Simpan</button>
<fieldset>
<legend>Data Pemesan</legend>
<label for="customer_name">Nama Lengkap</label>
<input id="customer_name" name="customer_name" value="{{.Form.CustomerName}}" required>
<label for="phone">Nomor WhatsApp</label>
<input id="phone" name="phone" type="tel" value="{{.Form.Phone}}" placeholder="{{.PhonePlaceholder}}" required>
</fieldset>

{{$canRemove := .Form.CanRemove}}
{{range .Items}}
<fieldset{{if .Valid}} class="valid"{{end}}>
<legend>Produk {{.Number}}</legend>
<label for="code_{{.ID}}">Kode Produk</label>
<select id="code_{{.ID}}" name="code_{{.ID}}">
<option value="">Pilih kode</option>
{{range .Codes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="color_{{.ID}}">Warna</label>
<select id="color_{{.ID}}" name="color_{{.ID}}"{{if .ColorDisabled}} disabled{{end}}>
<option value="">Pilih warna</option>
{{range .Colors}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="sleeve_{{.ID}}">Lengan</label>
<select id="sleeve_{{.ID}}" name="sleeve_{{.ID}}"{{if .SleeveDisabled}} disabled{{end}}>
<option value="">Pilih lengan</option>
{{range .Sleeves}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="size_{{.ID}}">Ukuran</label>
<select id="size_{{.ID}}" name="size_{{.ID}}">
<option value="">Pilih ukuran</option>
{{range .Sizes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="quantity_{{.ID}}">Jumlah</label>
<input id="quantity_{{.ID}}" name="quantity_{{.ID}}" type="number" min="1" value="{{.Quantity}}">
{{if $canRemove}}<button type="submit" name="action" value="remove:{{.ID}}">Hapus Produk</button>{{end}}
</fieldset>
{{end}}

<button type="submit" name="action" value="add">+ Tambah Produk</button>

<fieldset>
<legend>Catatan</legend>
<textarea name="notes" rows="3">{{.Form.Notes}}</textarea>
</fieldset>

<fieldset>
<legend>Panduan Ukuran</legend>
<table>
<tr><th>Ukuran</th><th>Lebar Dada (cm)</th><th>Panjang Badan (cm)</th></tr>
{{range .SizeChart}}<tr><td>{{.Size}}</td><td>{{.ChestCM}}</td><td>{{.LengthCM}}</td></tr>{{end}}
</table>
<ul>{{range .SizeGuide}}<li>{{.}}</li>{{end}}</ul>
<p>{{.SizeTip}}</p>
</fieldset>

{{with .Summary}}
<div class="summary">
<strong>Ringkasan Pesanan</strong>
<p>Nama: {{.CustomerName}}<br>Telepon: {{.Phone}}</p>
<ol>{{range $i, $it := .Items}}<li>Produk {{inc $i}}: Kode {{$it.Code}}, {{$it.Color}}, Lengan {{$it.Sleeve}}, Ukuran {{$it.Size}}, {{$it.Quantity}} pcs</li>{{end}}</ol>
{{if .Notes}}<p>Catatan: {{.Notes}}</p>{{end}}
<p>Total: {{.TotalQuantity}} pcs</p>
</div>
{{end}}

<button type="submit" name="action" value="save">Simpan</button>
<button type="submit" name="action" value="submit">Kirim via WhatsApp</button>
</form>
</body>
</html>{{end}}

{{define "sent"}}{{template "head" .}}
<h1>Pesanan Terkirim</h1>
<p><a href="{{.Handoff.URL}}" target="_blank" rel="noopener">Buka WhatsApp</a></p>
<pre>{{.Handoff.Message}}</pre>
<p><a href="/">Buat pesanan baru</a></p>
<script>
window.open({{.Handoff.URL}}, '_blank');
setTimeout(function () { alert({{.Handoff.Notice}}); }, {{.Handoff.NoticeDelayMS}});
</script>
</body>
</html>{{end}}
`
