package get_available_slots

import (
	"sort"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// ResolveSlots генерирует доступные слоты услуги в диапазоне [from, to]
//
// Для каждого календарного дня диапазона (в таймзоне услуги) берутся окна
// доступности соответствующего дня недели, и каждое окно нарезается на слоты
// длиной duration_minutes с шагом duration_minutes + buffer_minutes, начиная
// с начала окна. Слот отбрасывается, если:
//   - его конец выходит за конец окна
//   - он начинается раньше max(from, now) - слоты в прошлом не выдаются
//   - его конец позже to
//   - он пересекается (с учетом буфера) с блокирующим бронированием
//
// Пересекающиеся окна дают дублирующиеся слоты - дедупликация по времени
// начала, первое вхождение выигрывает. Результат отсортирован по возрастанию.
func ResolveSlots(
	service *domain.BookableService,
	windows []*domain.AvailabilityWindow,
	bookings []*domain.Booking,
	from, to time.Time,
	now time.Time,
	loc *time.Location,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if len(windows) == 0 {
		return slots
	}

	// Слоты никогда не генерируются в прошлом
	effectiveFrom := from
	if effectiveFrom.Before(now) {
		effectiveFrom = now
	}

	seen := make(map[int64]struct{})

	// Итерируемся по календарным дням в таймзоне услуги
	// time.Date нормализует несуществующие времена на границах перевода часов,
	// поэтому итерация по дням устойчива к DST
	fromLocal := from.In(loc)
	day := time.Date(fromLocal.Year(), fromLocal.Month(), fromLocal.Day(), 0, 0, 0, 0, loc)
	toLocal := to.In(loc)

	for !day.After(toLocal) {
		weekday := day.Weekday()

		for _, window := range windows {
			if !window.MatchesWeekday(weekday) {
				continue
			}

			for _, slot := range tileWindow(day, window, service, loc) {
				if slot.Start.Before(effectiveFrom) {
					continue
				}
				if slot.End.After(to) {
					continue
				}
				if overlapsBlocking(slot, bookings, service.BufferMinutes, now) {
					continue
				}

				key := slot.Start.Unix()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				slots = append(slots, slot)
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

// tileWindow нарезает одно окно на слоты в пределах указанного дня
//
// Границы слотов строятся через time.Date от wall-clock минут, поэтому
// длительность слота определяется в минутах локального времени услуги,
// а не в секундах UTC: при переводе часов слот остаётся "с 09:00 до 09:30"
// по настенным часам
func tileWindow(
	day time.Time,
	window *domain.AvailabilityWindow,
	service *domain.BookableService,
	loc *time.Location,
) []domain.Slot {
	startMin, err := window.StartTime.Minutes()
	if err != nil {
		return nil
	}
	endMin, err := window.EndTime.Minutes()
	if err != nil {
		return nil
	}
	if startMin >= endMin {
		return nil
	}

	duration := service.DurationMinutes
	step := service.SlotStep()

	slots := make([]domain.Slot, 0)
	for m := startMin; m+duration <= endMin; m += step {
		slotStart := time.Date(day.Year(), day.Month(), day.Day(), 0, m, 0, 0, loc)
		slotEnd := time.Date(day.Year(), day.Month(), day.Day(), 0, m+duration, 0, 0, loc)

		// На весенней границе DST нормализация может схлопнуть слот
		if !slotEnd.After(slotStart) {
			continue
		}

		slots = append(slots, domain.Slot{Start: slotStart, End: slotEnd})
	}

	return slots
}

// overlapsBlocking проверяет пересечение слота с блокирующими бронированиями
// Блокируют слот подтверждённые бронирования и неистёкшие удержания;
// буфер расширяет занятый интервал с обеих сторон
func overlapsBlocking(slot domain.Slot, bookings []*domain.Booking, bufferMinutes int, now time.Time) bool {
	for _, booking := range bookings {
		if !booking.IsBlocking(now) {
			continue
		}
		if booking.Overlaps(slot.Start, slot.End, bufferMinutes) {
			return true
		}
	}
	return false
}

// ContainsSlot проверяет, что слот с точными границами присутствует в списке
// Используется при серверной ревалидации удержания
func ContainsSlot(slots []domain.Slot, candidate domain.Slot) bool {
	for _, slot := range slots {
		if slot.Equal(candidate) {
			return true
		}
	}
	return false
}
