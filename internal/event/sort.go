package event

import "sort"

// SortByDate orders events ascending by resolved date. The sort is stable so
// events on the same date keep their original document order.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
