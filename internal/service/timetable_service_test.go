package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/neurotechh/tempus_bot/internal/model"
	"go.uber.org/zap"
)

// 2026-08-31 - понедельник
var testMonday = time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)

func newTestService(kv KV) *TimetableService {
	svc := NewTimetableService(NewTimetableStore(kv), zap.NewNop())
	svc.now = func() time.Time { return testMonday }
	return svc
}

const scenarioPayload = `{"Timetable":[{"Time/Day":"9-10","Monday":"Maths","Tuesday":"BREAK"}]}`

func TestIngest_ProjectsToday(t *testing.T) {
	svc := newTestService(newMemoryKV())

	view, err := svc.Ingest(context.Background(), 42, []byte(scenarioPayload))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if view.Day != model.DayMonday {
		t.Errorf("default day = %q, want Monday", view.Day)
	}
	want := []model.ClassSlot{{Time: "9-10", Subject: "Maths"}}
	if !reflect.DeepEqual(view.Slots, want) {
		t.Errorf("slots = %+v, want %+v", view.Slots, want)
	}
}

func TestIngest_MalformedLeavesStateEmpty(t *testing.T) {
	kv := newMemoryKV()
	svc := newTestService(kv)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, 42, []byte(`{"NotATimetable":[]}`))
	if !errors.Is(err, model.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}

	if len(kv.values) != 0 {
		t.Error("nothing must be persisted on malformed payload")
	}
	if _, err := svc.SelectDay(ctx, 42, "Monday"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("state must remain empty, got %v", err)
	}
}

func TestIngest_StoreErrorLeavesStateEmpty(t *testing.T) {
	kv := newMemoryKV()
	kv.setErr = errors.New("connection refused")
	svc := newTestService(kv)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, 42, []byte(scenarioPayload))
	if !errors.Is(err, kv.setErr) {
		t.Fatalf("expected store error to surface, got %v", err)
	}

	if svc.Loaded(42) {
		t.Error("failed save must not create a session")
	}
	if _, err := svc.SelectDay(ctx, 42, "Monday"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("state must remain empty, got %v", err)
	}
}

func TestRestore_EmptyWithoutPriorSave(t *testing.T) {
	svc := newTestService(newMemoryKV())

	view, err := svc.Restore(context.Background(), 42)
	if err != nil {
		t.Fatalf("restore of empty store must not fail: %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view, got %+v", view)
	}
}

func TestRestore_AfterIngestInFreshSession(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()

	if _, err := newTestService(kv).Ingest(ctx, 42, []byte(scenarioPayload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// новая сессия поверх того же хранилища
	svc := newTestService(kv)
	view, err := svc.Restore(ctx, 42)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if view == nil {
		t.Fatal("expected restored view, got nil")
	}
	if view.Day != model.DayMonday {
		t.Errorf("restored day = %q, want Monday", view.Day)
	}
	if len(view.Slots) != 1 || view.Slots[0].Subject != "Maths" {
		t.Errorf("restored slots = %+v", view.Slots)
	}
}

func TestRestore_CorruptStateBehavesAsEmpty(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, 42, timetableKey, "garbage"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	svc := newTestService(kv)
	view, err := svc.Restore(ctx, 42)
	if err != nil {
		t.Fatalf("corrupt state must not surface from restore: %v", err)
	}
	if view != nil {
		t.Errorf("expected nil view, got %+v", view)
	}
}

func TestSelectDay_CaseInsensitive(t *testing.T) {
	svc := newTestService(newMemoryKV())
	ctx := context.Background()

	payload := `{"Timetable":[{"Time/Day":"11-12","Friday":"Compilers"}]}`
	if _, err := svc.Ingest(ctx, 42, []byte(payload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	view, err := svc.SelectDay(ctx, 42, "friDAY")
	if err != nil {
		t.Fatalf("select day: %v", err)
	}
	if view.Day != model.DayFriday {
		t.Errorf("day = %q, want Friday", view.Day)
	}
	if len(view.Slots) != 1 || view.Slots[0].Subject != "Compilers" {
		t.Errorf("slots = %+v", view.Slots)
	}
}

func TestSelectDay_UnknownKeepsSelection(t *testing.T) {
	svc := newTestService(newMemoryKV())
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, 42, []byte(scenarioPayload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if _, err := svc.SelectDay(ctx, 42, "Funday"); !errors.Is(err, model.ErrUnknownDay) {
		t.Fatalf("expected ErrUnknownDay, got %v", err)
	}

	// выбранный день не изменился
	svc.mu.Lock()
	day := svc.sessions[42].selectedDay
	svc.mu.Unlock()
	if day != model.DayMonday {
		t.Errorf("selected day changed to %q", day)
	}
}

func TestSelectDay_NotLoaded(t *testing.T) {
	svc := newTestService(newMemoryKV())

	if _, err := svc.SelectDay(context.Background(), 42, "Monday"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestDelete_FreshSessionRestoresEmpty(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()

	svc := newTestService(kv)
	if _, err := svc.Ingest(ctx, 42, []byte(scenarioPayload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := svc.Delete(ctx, 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.SelectDay(ctx, 42, "Monday"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("state must be empty after delete, got %v", err)
	}

	fresh := newTestService(kv)
	view, err := fresh.Restore(ctx, 42)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if view != nil {
		t.Errorf("fresh session must be empty, got %+v", view)
	}
}

// Подтверждение удаления может прийти после рестарта бота:
// Restore поднимает сессию из хранилища, после чего Delete обязан сработать
func TestDelete_AfterRestartViaRestore(t *testing.T) {
	kv := newMemoryKV()
	ctx := context.Background()

	svc := newTestService(kv)
	if _, err := svc.Ingest(ctx, 42, []byte(scenarioPayload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	fresh := newTestService(kv)
	if err := fresh.Delete(ctx, 42); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before restore, got %v", err)
	}
	if _, err := fresh.Restore(ctx, 42); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := fresh.Delete(ctx, 42); err != nil {
		t.Fatalf("delete after restore: %v", err)
	}

	if loaded, err := NewTimetableStore(kv).Load(ctx, 42); err != nil || loaded != nil {
		t.Errorf("expected storage to be empty, got (%+v, %v)", loaded, err)
	}
}

func TestDelete_NotLoaded(t *testing.T) {
	svc := newTestService(newMemoryKV())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

// blockingKV задерживает первый Set до закрытия release
type blockingKV struct {
	*memoryKV
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingKV) Set(ctx context.Context, chatID int64, key, value string) error {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.memoryKV.Set(ctx, chatID, key, value)
}

func TestIngest_SecondConcurrentUploadRejected(t *testing.T) {
	kv := &blockingKV{
		memoryKV: newMemoryKV(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := newTestService(kv)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Ingest(ctx, 42, []byte(scenarioPayload))
		done <- err
	}()

	<-kv.entered
	if _, err := svc.Ingest(ctx, 42, []byte(scenarioPayload)); !errors.Is(err, ErrIngestInFlight) {
		t.Errorf("expected ErrIngestInFlight, got %v", err)
	}
	close(kv.release)

	if err := <-done; err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	// после завершения первой загрузки новая снова разрешена
	if _, err := svc.Ingest(ctx, 42, []byte(scenarioPayload)); err != nil {
		t.Errorf("ingest after completion: %v", err)
	}
}
