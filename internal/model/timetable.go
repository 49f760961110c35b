package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// BreakLesson зарезервированное значение ячейки "нет занятия"
const BreakLesson = "BREAK"

// timeDayKey ключ колонки времени в сыром JSON от OCR
const timeDayKey = "Time/Day"

var ErrMalformedPayload = errors.New("timetable payload is malformed")

// TimetableRow одна строка недельной сетки.
// Lessons всегда содержит все семь дней, отсутствующие в источнике колонки - пустые строки.
type TimetableRow struct {
	TimeLabel string
	Lessons   map[Day]string
}

// Lesson возвращает занятие для дня ("" если его нет)
func (r *TimetableRow) Lesson(day Day) string {
	return r.Lessons[day]
}

// Timetable каноническое расписание: строки в порядке источника
// (OCR отдаёт их хронологически, пересортировка не выполняется)
type Timetable struct {
	Rows []TimetableRow
}

// ClassSlot занятая пара конкретного дня, используется для вывода
type ClassSlot struct {
	Time    string
	Subject string
}

// rowDTO проекция строки на проводной формат {"Timetable":[...]}
type rowDTO struct {
	TimeDay   string `json:"Time/Day"`
	Monday    string `json:"Monday"`
	Tuesday   string `json:"Tuesday"`
	Wednesday string `json:"Wednesday"`
	Thursday  string `json:"Thursday"`
	Friday    string `json:"Friday"`
	Saturday  string `json:"Saturday"`
	Sunday    string `json:"Sunday"`
}

// ParseTimetable разбирает сырой JSON от OCR в каноническую модель.
// Форма payload проверяется строго: верхний уровень - объект с массивом "Timetable",
// каждый элемент - объект. Отсутствующие ключи дней и "Time/Day" не ошибка,
// они становятся пустыми строками; лишние ключи игнорируются.
func ParseTimetable(raw []byte) (*Timetable, error) {
	// json.Unmarshal принимает null без ошибки, оставляя nil,
	// поэтому после каждого уровня проверяется результат, а не только ошибка
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedPayload)
	}

	rowsRaw, ok := top["Timetable"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"Timetable\" key", ErrMalformedPayload)
	}

	var rawRows []json.RawMessage
	if err := json.Unmarshal(rowsRaw, &rawRows); err != nil {
		return nil, fmt.Errorf("%w: \"Timetable\" is not an array", ErrMalformedPayload)
	}
	if rawRows == nil {
		return nil, fmt.Errorf("%w: \"Timetable\" is not an array", ErrMalformedPayload)
	}

	timetable := &Timetable{Rows: make([]TimetableRow, 0, len(rawRows))}
	for i, rawRow := range rawRows {
		var fields map[string]string
		if err := json.Unmarshal(rawRow, &fields); err != nil {
			return nil, fmt.Errorf("%w: row %d is not an object of strings", ErrMalformedPayload, i)
		}
		if fields == nil {
			return nil, fmt.Errorf("%w: row %d is not an object of strings", ErrMalformedPayload, i)
		}

		row := TimetableRow{
			TimeLabel: fields[timeDayKey],
			Lessons:   make(map[Day]string, len(Days)),
		}
		for _, day := range Days {
			row.Lessons[day] = fields[string(day)]
		}
		timetable.Rows = append(timetable.Rows, row)
	}

	return timetable, nil
}

// Encode сериализует модель обратно в канонический вид {"Timetable":[...]}.
// Каждая строка содержит все восемь ключей, поэтому ParseTimetable(Encode(t))
// восстанавливает модель без потерь.
func (t *Timetable) Encode() ([]byte, error) {
	rows := make([]rowDTO, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, rowDTO{
			TimeDay:   row.TimeLabel,
			Monday:    row.Lessons[DayMonday],
			Tuesday:   row.Lessons[DayTuesday],
			Wednesday: row.Lessons[DayWednesday],
			Thursday:  row.Lessons[DayThursday],
			Friday:    row.Lessons[DayFriday],
			Saturday:  row.Lessons[DaySaturday],
			Sunday:    row.Lessons[DaySunday],
		})
	}

	data, err := json.Marshal(struct {
		Timetable []rowDTO `json:"Timetable"`
	}{Timetable: rows})
	if err != nil {
		return nil, fmt.Errorf("encode timetable: %w", err)
	}
	return data, nil
}

// SlotsFor строит упорядоченный список занятых пар для дня.
// Строки с пустой ячейкой или значением BREAK (в любом регистре) пропускаются.
// Чистая функция: порядок строк сохраняется, пустой результат - не ошибка.
func (t *Timetable) SlotsFor(day Day) []ClassSlot {
	slots := make([]ClassSlot, 0, len(t.Rows))
	for _, row := range t.Rows {
		subject := strings.TrimSpace(row.Lesson(day))
		if subject == "" || strings.EqualFold(subject, BreakLesson) {
			continue
		}
		slots = append(slots, ClassSlot{Time: row.TimeLabel, Subject: subject})
	}
	return slots
}
