package main

import (
	"fmt"
	"time"
)

// Slot identifies one of the four fixed gym time windows.
type Slot int

const (
	Slot0 Slot = iota // 14:00 - 15:30
	Slot1             // 15:30 - 17:00
	Slot2             // 17:00 - 18:30
	Slot3             // 18:30 - 20:00

	slotCount = 4
)

var slotLabels = [slotCount]string{
	"14:00 - 15:30",
	"15:30 - 17:00",
	"17:00 - 18:30",
	"18:30 - 20:00",
}

func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

func (s Slot) Label() string {
	if !s.Valid() {
		return "unknown"
	}
	return slotLabels[s]
}

// Selector returns the checkbox control for the slot on the booking surface.
func (s Slot) Selector() string {
	return fmt.Sprintf("#UC_FreeFitness_GVPeriodi_CBScelta_%d", int(s))
}

func (s Slot) String() string {
	return fmt.Sprintf("slot %d (%s)", int(s), s.Label())
}

// slotOrder builds the candidate order: the primary slot first and, when
// fallback is enabled, the remaining slots appended in canonical order.
func slotOrder(primary Slot, tryOthers bool) []Slot {
	order := []Slot{primary}
	if !tryOthers {
		return order
	}
	for s := Slot0; s < slotCount; s++ {
		if s != primary {
			order = append(order, s)
		}
	}
	return order
}

// settleAfterConfirm gives the ASP.NET postback time to land before the
// result screenshot is taken.
var settleAfterConfirm = 1500 * time.Millisecond

// submitSlot walks the candidate slots in order and returns the first one
// whose select-and-confirm succeeds. Disabled slots are skipped without
// counting as failures; a select or confirm failure is recorded and the next
// candidate is tried. After the first success no further candidate is
// touched.
//
// Failure taxonomy: every candidate disabled -> AllSlotsFullError; every
// attempted candidate failed -> NoSlotAvailableError wrapping the last
// failure.
func submitSlot(surface Surface, order []Slot, log func(string)) (Slot, error) {
	if log == nil {
		log = func(string) {}
	}

	var lastErr error
	for _, slot := range order {
		enabled, err := surface.IsEnabled(slot.Selector())
		if err != nil {
			lastErr = fmt.Errorf("%s: enabled check failed: %w", slot, err)
			log(fmt.Sprintf("Slot attempt failed (%s): %v", slot, err))
			continue
		}
		if !enabled {
			log(fmt.Sprintf("%s disabled/full; skipping.", slot))
			continue
		}

		if err := surface.SetChecked(slot.Selector()); err != nil {
			lastErr = fmt.Errorf("%s: select failed: %w", slot, err)
			log(fmt.Sprintf("Slot attempt failed (%s): %v", slot, err))
			continue
		}
		log(fmt.Sprintf("Slot selected (%s); submitting.", slot))

		if err := surface.Click(selConfirm); err != nil {
			lastErr = fmt.Errorf("%s: confirm failed: %w", slot, err)
			log(fmt.Sprintf("Slot attempt failed (%s): %v", slot, err))
			continue
		}
		log("Confirm clicked; waiting for server response.")
		time.Sleep(settleAfterConfirm)

		if err := surface.Screenshot(artifactPath); err != nil {
			// The booking itself went through; a failed screenshot is worth
			// a log line, not a failed outcome.
			log(fmt.Sprintf("Screenshot failed: %v", err))
		} else {
			log(fmt.Sprintf("Attempted booking; see %s", artifactPath))
		}
		return slot, nil
	}

	if lastErr != nil {
		return -1, &NoSlotAvailableError{Last: lastErr}
	}
	return -1, &AllSlotsFullError{}
}
