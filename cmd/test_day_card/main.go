package main

import (
	"fmt"
	"os"

	"github.com/neurotechh/tempus_bot/internal/controller/render"
	"github.com/neurotechh/tempus_bot/internal/model"
)

func main() {
	// Создаем тестовые данные
	slots := []model.ClassSlot{
		{Time: "9:00-9:55", Subject: "Engineering Maths"},
		{Time: "10:00-10:55", Subject: "Software Engineering"},
		{Time: "11:10-12:05", Subject: "Artificial Intelligence"},
		{Time: "13:00-13:55", Subject: "Industrial Visit Preparation"},
		{Time: "14:00-14:55", Subject: "Compiler Design Lab"},
	}

	// Генерируем изображение
	imageData, err := render.DayCard(model.DayWednesday, slots)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	// Сохраняем в файл
	filename := "day.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📊 Пар: %d\n", len(slots))
}
