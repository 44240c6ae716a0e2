package attendance

import "time"

const dateLayout = "2006-01-02"

// ParseDateParam "YYYY-MM-DD" (veya tam RFC3339) değerini gün sınırına
// normalize eder: from için günün başı (00:00:00.000), to için günün sonu
// (23:59:59.999). Bozuk değer reddedilmez, filtre yok sayılır.
func ParseDateParam(val string, endOfDay bool) *time.Time {
	if val == "" {
		return nil
	}

	d, err := time.ParseInLocation(dateLayout, val, time.Local)
	if err != nil {
		d, err = time.Parse(time.RFC3339, val)
		if err != nil {
			return nil
		}
	}

	if endOfDay {
		d = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), d.Location())
	} else {
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	return &d
}
