package taskpad

import (
	"errors"
	"fmt"
	"time"
)

var testEpoch = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

// sequentialIDs returns a generator yielding T-1, T-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("T-%d", n)
	}
}

// newTestStore builds a store over an in-memory slot with a fake clock
func newTestStore() (*Store, *FakeClock, *MemorySlotStore) {
	clock := NewFakeClock(testEpoch)
	slots := NewMemorySlotStore()
	store := NewStore(
		NewSlotPersistence(slots, "", nil),
		WithClock(clock),
		WithIDGenerator(sequentialIDs()),
	)
	return store, clock, slots
}

// failingSlots is a slot store whose writes always fail
type failingSlots struct {
	MemorySlotStore
	writes int
}

func newFailingSlots() *failingSlots {
	return &failingSlots{MemorySlotStore: MemorySlotStore{slots: map[string]string{}}}
}

func (f *failingSlots) Set(key, value string) error {
	f.writes++
	return errors.New("quota exceeded")
}
