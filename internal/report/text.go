package report

import (
	"fmt"

	"bikeshare/internal/analysis"
	"bikeshare/internal/core"
)

// Page copy.
const (
	Title     = "Proyek Analisis Penyewaan Sepeda"
	Question1 = "Pertanyaan 1: Bagaimana pengaruh hari libur dan hari kerja terhadap jumlah penyewaan sepeda?"
	Question2 = "Pertanyaan 2: Apakah terdapat pola musiman dalam jumlah penyewaan sepeda?"

	InfoHeading     = "Informasi Dataset:"
	DescribeHeading = "Statistik Deskriptif:"
	HeadHeading     = "Beberapa Baris Awal:"

	HolidayHeading = "Pengaruh Hari Libur terhadap Jumlah Penyewaan Sepeda"
	SeasonHeading  = "Jumlah Penyewaan Sepeda Berdasarkan Musim Sepanjang Tahun"

	ConclusionHeading = "Conclusion"
	Conclusion1       = "Conclusion pertanyaan 1: Berdasarkan hasil analisis, jumlah penyewaan sepeda lebih tinggi pada hari non-libur dibandingkan dengan hari libur. Ini menunjukkan bahwa lebih banyak orang menyewa sepeda pada hari-hari kerja atau hari-hari biasa, sementara pada hari libur, jumlah penyewa cenderung menurun."
	Conclusion2       = "Conclusion pertanyaan 2: Dari hasil analisis musiman, terlihat bahwa jumlah penyewaan sepeda paling tinggi selama musim 'Fall'. Musim ini menunjukkan aktivitas penyewaan sepeda yang lebih banyak dibandingkan dengan musim lainnya, seperti 'Spring', 'Summer', dan 'Winter'."

	noData = "tidak ada data"
)

func holidayLines(res *analysis.Result) []string {
	h := res.Holiday
	return []string{
		"Jumlah penyewaan sepeda tertinggi pada hari libur: " + rangeValue(h.Holiday, true),
		"Jumlah penyewaan sepeda terendah pada hari libur: " + rangeValue(h.Holiday, false),
		"Jumlah penyewaan sepeda tertinggi pada hari non-libur: " + rangeValue(h.NonHoliday, true),
		"Jumlah penyewaan sepeda terendah pada hari non-libur: " + rangeValue(h.NonHoliday, false),
	}
}

func rangeValue(r core.CountRange, upper bool) string {
	switch {
	case !r.Valid:
		return noData
	case upper:
		return fmt.Sprint(r.Max)
	default:
		return fmt.Sprint(r.Min)
	}
}

func seasonLines(res *analysis.Result) []string {
	s := res.Season
	return []string{
		fmt.Sprintf("Jumlah penyewaan sepeda tertinggi berdasarkan musim: %d (Musim: %s)", s.Max, s.MaxSeasonName),
		fmt.Sprintf("Jumlah penyewaan sepeda terendah berdasarkan musim: %d (Musim: %s)", s.Min, s.MinSeasonName),
	}
}
