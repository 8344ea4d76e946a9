package scripture

import (
	"time"

	"github.com/dukerupert/overhill/internal/model"
)

// Partition splits scriptures into today's featured item(s) and history.
// Timestamps are stored in UTC; "today" means same calendar date as now
// in the given location, regardless of time of day.
func Partition(scriptures []model.Scripture, now time.Time, loc *time.Location) (today, previous []model.Scripture) {
	ny, nm, nd := now.In(loc).Date()
	for _, s := range scriptures {
		y, m, d := s.CreatedAt.In(loc).Date()
		if y == ny && m == nm && d == nd {
			today = append(today, s)
		} else {
			previous = append(previous, s)
		}
	}
	return today, previous
}
