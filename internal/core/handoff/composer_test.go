package handoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rl1809/kaos-order/internal/core/domain"
)

var orderTime = time.Date(2026, 3, 5, 9, 7, 3, 0, time.UTC)

func fixedComposer() *Composer {
	return NewComposer(func() time.Time { return orderTime }, time.FixedZone("WIB", 7*60*60))
}

func budiForm() *domain.OrderForm {
	f := &domain.OrderForm{
		CustomerName: "Budi",
		Notes:        "Tolong cepat",
		Items: []domain.LineItem{
			{ID: "a", Code: domain.Code02, Color: domain.ColorBlack, Sleeve: domain.SleeveShort, Size: domain.SizeM, Quantity: 3},
		},
	}
	f.SetPhone("081234567890")
	return f
}

func TestCompose(t *testing.T) {
	want := "PESANAN BARU KAOS\n\n" +
		"Nama: Budi\n" +
		"Telepon: 6281234567890\n\n" +
		"DETAIL PESANAN:\n" +
		"\n1. Kode 02\n" +
		"   Warna: hitam\n" +
		"   Lengan: pendek\n" +
		"   Ukuran: M\n" +
		"   Jumlah: 3 pcs\n" +
		"\nTOTAL: 3 pcs\n" +
		"\nCatatan: Tolong cepat\n" +
		"\nWaktu Pemesanan: 5/3/2026, 16.07.03"

	assert.Equal(t, want, fixedComposer().Compose(budiForm()))
}

func TestCompose_SkipsIncompleteItemsAndNumbersValidOnes(t *testing.T) {
	f := budiForm()
	f.Notes = ""
	f.Items = []domain.LineItem{
		domain.NewLineItem("blank"),
		f.Items[0],
		{ID: "c", Code: domain.Code07, Color: domain.ColorNavy, Sleeve: domain.SleeveLong, Size: domain.SizeXXL, Quantity: 2},
	}

	msg := fixedComposer().Compose(f)

	assert.Contains(t, msg, "\n1. Kode 02\n")
	assert.Contains(t, msg, "\n2. Kode 07\n   Warna: navy\n   Lengan: panjang\n   Ukuran: XXL\n   Jumlah: 2 pcs\n")
	assert.NotContains(t, msg, "3. Kode")
	assert.Contains(t, msg, "TOTAL: 5 pcs")
	assert.NotContains(t, msg, "Catatan")
}

func TestCompose_DuplicateLinesStaySeparate(t *testing.T) {
	f := budiForm()
	dup := f.Items[0]
	dup.ID = "b"
	f.Items = append(f.Items, dup)

	msg := fixedComposer().Compose(f)

	assert.Contains(t, msg, "1. Kode 02")
	assert.Contains(t, msg, "2. Kode 02")
	assert.Contains(t, msg, "TOTAL: 6 pcs")
}

func TestJakarta(t *testing.T) {
	_, offset := orderTime.In(Jakarta()).Zone()
	assert.Equal(t, 7*60*60, offset)
}
