package tracker

import (
	"strings"

	"github.com/busfleet/busfleet/pkg/fleet"
	"golang.org/x/exp/slices"
)

// sortQueue orders progress records into the "who goes next" queue.
// Scheduled departure strings are compared when both records carry one;
// the bus number breaks ties and decides when either side has no schedule.
// The comparator is a total order, so the result does not depend on the
// order the records were computed in.
func sortQueue(records []fleet.ProgressRecord) {
	slices.SortStableFunc(records, func(a fleet.ProgressRecord, b fleet.ProgressRecord) int {
		if a.ScheduledDeparture != "" && b.ScheduledDeparture != "" {
			if result := strings.Compare(a.ScheduledDeparture, b.ScheduledDeparture); result != 0 {
				return result
			}
		}

		return strings.Compare(a.BusNumber, b.BusNumber)
	})
}

// queueCount counts buses actively converging on a stop - in transit or
// arriving, not yet at a station and not already past their neighbourhood.
func queueCount(records []fleet.ProgressRecord) int {
	count := 0
	for _, record := range records {
		if record.Status == fleet.ProgressStatusInTransit || record.Status == fleet.ProgressStatusArriving {
			count++
		}
	}

	return count
}
