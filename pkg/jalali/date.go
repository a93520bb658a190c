// Package jalali предоставляет тип даты персидского (солнечного) календаря
// для бронирований. Все даты в системе хранятся и сравниваются как джалали-даты;
// преобразование в григорианский календарь выполняет go-persian-calendar.
package jalali

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DateFormat формат даты в API и БД: "1405-01-15"
const DateFormat = "%04d-%02d-%02d"

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("jalali: invalid date, expected YYYY-MM-DD")
)

// Date календарный день джалали без времени суток.
// Нулевое значение (Date{}) считается незаданной датой.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate создает дату с валидацией компонентов
func NewDate(year, month, day int) (Date, error) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	// ptime.Date нормализует переполнение (например, 31-й день месяца с 30 днями),
	// поэтому проверяем, что компоненты не изменились после round-trip
	pt := ptime.Date(year, ptime.Month(month), day, 12, 0, 0, 0, ptime.Iran())
	if pt.Year() != year || int(pt.Month()) != month || pt.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	return Date{year: year, month: month, day: day}, nil
}

// Parse разбирает строку формата "YYYY-MM-DD"
func Parse(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	var year, month, day int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &year, &month, &day); err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return NewDate(year, month, day)
}

// Today возвращает сегодняшнюю дату по времени Ирана
func Today() Date {
	now := ptime.New(time.Now().In(ptime.Iran()))
	return Date{year: now.Year(), month: int(now.Month()), day: now.Day()}
}

// FromTime конвертирует момент времени в джалали-дату (по зоне Ирана)
func FromTime(t time.Time) Date {
	pt := ptime.New(t.In(ptime.Iran()))
	return Date{year: pt.Year(), month: int(pt.Month()), day: pt.Day()}
}

// Year возвращает год
func (d Date) Year() int { return d.year }

// Month возвращает месяц (1-12)
func (d Date) Month() int { return d.month }

// Day возвращает день месяца
func (d Date) Day() int { return d.day }

// IsZero возвращает true для незаданной даты
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// gregorian возвращает соответствующую григорианскую дату в UTC
func (d Date) gregorian() time.Time {
	pt := ptime.Date(d.year, ptime.Month(d.month), d.day, 12, 0, 0, 0, ptime.Iran())
	g := pt.Time()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysSinceEpoch возвращает монотонный номер дня.
// Используется sweep-алгоритмом для позиционирования событий на оси времени.
func (d Date) DaysSinceEpoch() int64 {
	return d.gregorian().Unix() / (24 * 60 * 60)
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

// Equal возвращает true, если даты совпадают
func (d Date) Equal(other Date) bool {
	return d.compare(other) == 0
}

func (d Date) compare(other Date) int {
	if d.year != other.year {
		return d.year - other.year
	}
	if d.month != other.month {
		return d.month - other.month
	}
	return d.day - other.day
}

// AddDays возвращает дату, сдвинутую на days дней (days может быть отрицательным)
func (d Date) AddDays(days int) Date {
	g := d.gregorian().AddDate(0, 0, days)
	return FromTime(g)
}

// String возвращает дату в формате "YYYY-MM-DD"
func (d Date) String() string {
	return fmt.Sprintf(DateFormat, d.year, d.month, d.day)
}

// Value реализует driver.Valuer.
// Дата хранится в БД как CHAR(10) "YYYY-MM-DD": формат с ведущими нулями
// сохраняет лексикографический порядок, поэтому диапазонные условия в SQL работают.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	if src == nil {
		*d = Date{}
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidDate, src)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
