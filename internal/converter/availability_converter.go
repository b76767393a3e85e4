package converter

import "clinic-appointment/internal/domain/entity"

// ClockTimesToStrings renders slots as "HH:MM".
func ClockTimesToStrings(times []entity.ClockTime) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.String()
	}
	return out
}

func SlotMapToStrings(days map[string][]entity.ClockTime) map[string][]string {
	out := make(map[string][]string, len(days))
	for day, slots := range days {
		out[day] = ClockTimesToStrings(slots)
	}
	return out
}
