package attendance

import (
	"strconv"
	"strings"

	"pdks-backend/internal/models"
)

// TR Excel varsayılanları: ; ayraç + UTF-8 BOM
const (
	DefaultCSVSeparator = ";"
	csvTimestampLayout  = "2006-01-02T15:04:05.000Z07:00"
)

var csvHeaders = []string{
	"logId",
	"companyId",
	"employeeId",
	"firstName",
	"lastName",
	"action",
	"timestamp",
	"recordedBy",
}

// RowsToCSV log satırlarını (Employee preload edilmiş) ayraçlı metne çevirir.
// Satır ayracı CRLF; ayraç, çift tırnak veya satır sonu içeren alanlar çift
// tırnakla sarılır, içerideki tırnaklar ikilenir. İyi biçimli satır verisinde
// asla hata üretmez.
func RowsToCSV(rows []models.AttendanceLog, delim string, addBOM bool) string {
	if delim == "" {
		delim = DefaultCSVSeparator
	}

	esc := func(s string) string {
		if strings.ContainsAny(s, delim+"\"\n") {
			return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
		return s
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(csvHeaders, delim))

	for _, r := range rows {
		// Ayraç kullanıcı seçimi olduğu için sayısal ve zaman alanları da
		// esc'den geçer (ör. sep=":" timestamp'i bölerdi)
		fields := []string{
			esc(strconv.FormatUint(uint64(r.ID), 10)),
			esc(strconv.FormatUint(uint64(r.CompanyID), 10)),
			esc(strconv.FormatUint(uint64(r.EmployeeID), 10)),
			esc(r.Employee.FirstName),
			esc(r.Employee.LastName),
			esc(string(r.Action)),
			esc(r.Timestamp.UTC().Format(csvTimestampLayout)),
			esc(r.RecordedBy),
		}
		lines = append(lines, strings.Join(fields, delim))
	}

	csv := strings.Join(lines, "\r\n")
	if addBOM {
		return "\uFEFF" + csv
	}
	return csv
}
