package model

import (
	"errors"
	"strings"
	"time"
)

// Day день недели в каноническом написании (как в данных OCR)
type Day string

const (
	DayMonday    Day = "Monday"
	DayTuesday   Day = "Tuesday"
	DayWednesday Day = "Wednesday"
	DayThursday  Day = "Thursday"
	DayFriday    Day = "Friday"
	DaySaturday  Day = "Saturday"
	DaySunday    Day = "Sunday"
)

// Days все дни недели в каноническом порядке
var Days = [7]Day{
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
	DaySaturday,
	DaySunday,
}

var ErrUnknownDay = errors.New("unknown day name")

// ParseDay находит канонический день по строке без учёта регистра
func ParseDay(input string) (Day, error) {
	trimmed := strings.TrimSpace(input)
	for _, day := range Days {
		if strings.EqualFold(trimmed, string(day)) {
			return day, nil
		}
	}
	return "", ErrUnknownDay
}

// DayOf возвращает день недели для момента времени по локальному календарю
func DayOf(t time.Time) Day {
	switch t.Weekday() {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}

// Short короткая подпись для кнопок (MON, TUE, ...)
func (d Day) Short() string {
	return strings.ToUpper(string(d)[:3])
}
