package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtractTimetable_ReturnsFirstPageData(t *testing.T) {
	var gotPath, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotContentType = header.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"total_pages": 2,
			"results": [
				{"page_number": 1, "data": {"Timetable":[{"Time/Day":"9-10","Monday":"Maths"}]}},
				{"page_number": 2, "data": {"Timetable":[]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	data, err := client.ExtractTimetable(context.Background(), "tt.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if gotPath != "/ocr/extract-timetable" {
		t.Errorf("path = %q", gotPath)
	}
	if gotContentType != "application/pdf" {
		t.Errorf("part content type = %q, want application/pdf", gotContentType)
	}
	if !strings.Contains(string(data), `"Monday":"Maths"`) {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestExtractTimetable_RejectsUnsupportedType(t *testing.T) {
	client := NewClient("http://unused", zap.NewNop())

	if _, err := client.ExtractTimetable(context.Background(), "notes.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestExtractTimetable_NoPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "total_pages": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.ExtractTimetable(context.Background(), "tt.pdf", "application/pdf", strings.NewReader("x"))
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestExtractTimetable_SurfacesAPIDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Invalid file type. Allowed types: image/jpeg, image/jpg, image/png, application/pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.ExtractTimetable(context.Background(), "tt.pdf", "application/pdf", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "Invalid file type") {
		t.Errorf("expected API detail in error, got %v", err)
	}
}

func TestFindRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/floor/find/cr/301" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"room": {
				"id": "floor3_cr301",
				"floor": "3",
				"room_number": "301",
				"room_type": "cr",
				"room_type_full": "Classroom",
				"image_url": "http://example.com/floor/image/3/cr301.png"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	room, err := client.FindRoom(context.Background(), "cr", "301")
	if err != nil {
		t.Fatalf("find room: %v", err)
	}
	if room == nil || room.ID != "floor3_cr301" || room.RoomTypeFull != "Classroom" {
		t.Errorf("unexpected room: %+v", room)
	}

	missing, err := client.FindRoom(context.Background(), "cc", "999")
	if err != nil {
		t.Fatalf("missing room must not be an error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing room, got %+v", missing)
	}
}
