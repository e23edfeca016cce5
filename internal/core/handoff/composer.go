// Package handoff turns a submitted order form into the WhatsApp message and
// deep link the vendor receives, and issues the launch and notice effects.
package handoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/kaos-order/internal/core/domain"
)

// timestampLayout matches how id-ID renders a local date and time.
const timestampLayout = "2/1/2006, 15.04.05"

// Composer renders order forms as plain-text messages.
type Composer struct {
	now func() time.Time
	loc *time.Location
}

func NewComposer(now func() time.Time, loc *time.Location) *Composer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = Jakarta()
	}
	return &Composer{now: now, loc: loc}
}

// Jakarta returns Western Indonesia Time, falling back to a fixed +07:00 zone
// when the tz database is unavailable.
func Jakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// Compose renders the valid items of f. Callers validate f first; an empty
// item list still renders, with a zero total.
func (c *Composer) Compose(f *domain.OrderForm) string {
	items := f.ValidItems()

	var b strings.Builder
	b.WriteString("PESANAN BARU KAOS\n\n")
	fmt.Fprintf(&b, "Nama: %s\n", f.CustomerName)
	fmt.Fprintf(&b, "Telepon: %s\n\n", f.Phone)

	b.WriteString("DETAIL PESANAN:\n")
	for i, it := range items {
		fmt.Fprintf(&b, "\n%d. Kode %s\n", i+1, it.Code)
		fmt.Fprintf(&b, "   Warna: %s\n", it.Color)
		fmt.Fprintf(&b, "   Lengan: %s\n", it.Sleeve)
		fmt.Fprintf(&b, "   Ukuran: %s\n", it.Size)
		fmt.Fprintf(&b, "   Jumlah: %d pcs\n", it.Quantity)
	}

	fmt.Fprintf(&b, "\nTOTAL: %d pcs\n", domain.TotalQuantity(items))

	if f.Notes != "" {
		fmt.Fprintf(&b, "\nCatatan: %s\n", f.Notes)
	}
	fmt.Fprintf(&b, "\nWaktu Pemesanan: %s", c.now().In(c.loc).Format(timestampLayout))

	return b.String()
}
