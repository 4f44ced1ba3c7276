package main

import "time"

// seedHours часы начала слотов в каждом дне
var seedHours = []int{9, 14, 18}

type interval struct {
	start time.Time
	end   time.Time
}

// buildSchedule слоты на days дней начиная с завтрашнего дня в loc
func buildSchedule(now time.Time, loc *time.Location, days int, hours []int, duration time.Duration) []interval {
	local := now.In(loc)
	result := make([]interval, 0, days*len(hours))

	for day := 1; day <= days; day++ {
		for _, hour := range hours {
			start := time.Date(local.Year(), local.Month(), local.Day()+day, hour, 0, 0, 0, loc)
			result = append(result, interval{start: start, end: start.Add(duration)})
		}
	}
	return result
}
