package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/neurotechh/tempus_bot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	cardWidth    = 900
	headerHeight = 96
	rowHeight    = 64
	rowGap       = 12
	paddingX     = 32
	paddingY     = 24
	timeColWidth = 180
	cornerRadius = 10.0
)

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	headerColor   = color.RGBA{255, 99, 71, 255}
	headerText    = color.RGBA{255, 255, 255, 255}
	rowColor      = color.RGBA{255, 255, 255, 255}
	timeBgColor   = color.RGBA{230, 233, 238, 255}
	slotTextColor = color.RGBA{20, 24, 28, 230}
	mutedColor    = color.RGBA{110, 115, 120, 255}
)

// DayCard рисует карточку расписания одного дня в PNG.
// Шрифт - basicfont, карточке этого достаточно.
func DayCard(day model.Day, slots []model.ClassSlot) ([]byte, error) {
	height := headerHeight + 2*paddingY + rowHeight
	if len(slots) > 0 {
		height = headerHeight + 2*paddingY + len(slots)*(rowHeight+rowGap) - rowGap
	}

	dc := gg.NewContext(cardWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	// заголовок
	dc.SetColor(headerColor)
	dc.DrawRectangle(0, 0, cardWidth, headerHeight)
	dc.Fill()
	dc.SetColor(headerText)
	dc.DrawStringAnchored(string(day), cardWidth/2, headerHeight/2, 0.5, 0.5)

	if len(slots) == 0 {
		dc.SetColor(mutedColor)
		dc.DrawStringAnchored("No classes today", cardWidth/2, float64(headerHeight)+paddingY+rowHeight/2, 0.5, 0.5)
		return encode(dc)
	}

	y := float64(headerHeight + paddingY)
	for _, slot := range slots {
		// плашка строки
		dc.SetColor(rowColor)
		dc.DrawRoundedRectangle(paddingX, y, cardWidth-2*paddingX, rowHeight, cornerRadius)
		dc.Fill()

		// колонка времени
		dc.SetColor(timeBgColor)
		dc.DrawRoundedRectangle(paddingX, y, timeColWidth, rowHeight, cornerRadius)
		dc.Fill()

		dc.SetColor(slotTextColor)
		dc.DrawStringAnchored(slot.Time, paddingX+timeColWidth/2, y+rowHeight/2, 0.5, 0.5)
		dc.DrawStringAnchored(slot.Subject, paddingX+timeColWidth+24, y+rowHeight/2, 0, 0.5)

		y += rowHeight + rowGap
	}

	return encode(dc)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode day card: %w", err)
	}
	return buf.Bytes(), nil
}
