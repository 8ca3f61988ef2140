package tracker

import (
	"testing"

	"github.com/busfleet/busfleet/pkg/fleet"
)

func TestSortQueueByScheduledDeparture(t *testing.T) {
	records := []fleet.ProgressRecord{
		{BusNumber: "AP01", ScheduledDeparture: "10:30"},
		{BusNumber: "AP02", ScheduledDeparture: "09:15"},
		{BusNumber: "AP03", ScheduledDeparture: "09:45"},
	}

	sortQueue(records)

	expected := []string{"AP02", "AP03", "AP01"}
	for i, busNumber := range expected {
		if records[i].BusNumber != busNumber {
			t.Errorf("Position %d: expected %s, got %s", i, busNumber, records[i].BusNumber)
		}
	}
}

func TestSortQueueFallsBackToBusNumber(t *testing.T) {
	records := []fleet.ProgressRecord{
		{BusNumber: "AP09", ScheduledDeparture: "10:30"},
		{BusNumber: "AP01"},
		{BusNumber: "AP05"},
	}

	sortQueue(records)

	// One missing departure in a pair forces the bus-number comparison.
	expected := []string{"AP01", "AP05", "AP09"}
	for i, busNumber := range expected {
		if records[i].BusNumber != busNumber {
			t.Errorf("Position %d: expected %s, got %s", i, busNumber, records[i].BusNumber)
		}
	}
}

func TestSortQueueTiedSchedulesOrderedByBusNumber(t *testing.T) {
	// Records arrive in whatever order the fan-out finished in; the queue
	// must come out the same either way.
	run1 := []fleet.ProgressRecord{
		{BusNumber: "AP01", ScheduledDeparture: "09:00"},
		{BusNumber: "AP02", ScheduledDeparture: "09:00"},
	}
	run2 := []fleet.ProgressRecord{
		{BusNumber: "AP02", ScheduledDeparture: "09:00"},
		{BusNumber: "AP01", ScheduledDeparture: "09:00"},
	}

	sortQueue(run1)
	sortQueue(run2)

	for i := range run1 {
		if run1[i].BusNumber != run2[i].BusNumber {
			t.Fatalf("Position %d differs between runs: %s vs %s", i, run1[i].BusNumber, run2[i].BusNumber)
		}
	}

	if run1[0].BusNumber != "AP01" || run1[1].BusNumber != "AP02" {
		t.Errorf("Expected tied schedules ordered by bus number, got %s %s", run1[0].BusNumber, run1[1].BusNumber)
	}
}

func TestSortQueueIsStable(t *testing.T) {
	records := []fleet.ProgressRecord{
		{BusNumber: "AP07", Status: fleet.ProgressStatusArriving},
		{BusNumber: "AP07", Status: fleet.ProgressStatusInTransit},
	}

	sortQueue(records)

	if records[0].Status != fleet.ProgressStatusArriving {
		t.Error("Expected equal records to keep their original order")
	}
}

func TestQueueCountOnlyConvergingBuses(t *testing.T) {
	records := []fleet.ProgressRecord{
		{Status: fleet.ProgressStatusAtStation},
		{Status: fleet.ProgressStatusInTransit},
		{Status: fleet.ProgressStatusArriving},
	}

	if got := queueCount(records); got != 2 {
		t.Errorf("Expected queue count 2, got %d", got)
	}
}

func TestQueueCountIgnoresDeparted(t *testing.T) {
	records := []fleet.ProgressRecord{
		{Status: fleet.ProgressStatusDeparted},
		{Status: fleet.ProgressStatusAtStation},
	}

	if got := queueCount(records); got != 0 {
		t.Errorf("Expected queue count 0, got %d", got)
	}
}

func TestQueueCountEmpty(t *testing.T) {
	if got := queueCount(nil); got != 0 {
		t.Errorf("Expected queue count 0 for no records, got %d", got)
	}
}
