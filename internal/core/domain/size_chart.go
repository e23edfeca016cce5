package domain

type SizeChartRow struct {
	Size     Size `json:"size"`
	ChestCM  int  `json:"chest_cm"`
	LengthCM int  `json:"length_cm"`
}

var SizeChart = []SizeChartRow{
	{Size: SizeS, ChestCM: 45, LengthCM: 66},
	{Size: SizeM, ChestCM: 47, LengthCM: 68},
	{Size: SizeL, ChestCM: 50, LengthCM: 72},
	{Size: SizeXL, ChestCM: 53, LengthCM: 74},
	{Size: SizeXXL, ChestCM: 56, LengthCM: 75},
}

var SizeChartGuide = []string{
	"Lebar Dada: Ukur dari ketiak kiri ke ketiak kanan",
	"Panjang Badan: Ukur dari bahu tertinggi hingga ujung bawah",
}

const SizeChartTip = "Pilih ukuran yang lebih besar jika Anda ragu antara dua ukuran"
