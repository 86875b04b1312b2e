package executor

import "github.com/oisee/bf-zkvm/pkg/events"

// memoryController owns the canonical per-address tape state during a
// run and derives the per-address MemoryEvent (sticky Initial, rolling
// Final) the memory-consistency chip needs. Addresses are sparse
// (Brainfuck tapes are usually small), so a map is the right shape.
type memoryController struct {
	canonical map[uint32]events.MemoryRecord
	touched   map[uint32]*events.MemoryEvent
	order     []uint32 // first-touch order, for deterministic trace generation
}

func newMemoryController() *memoryController {
	return &memoryController{
		canonical: make(map[uint32]events.MemoryRecord),
		touched:   make(map[uint32]*events.MemoryEvent),
	}
}

func (m *memoryController) recordAccess(addr uint32) (*events.MemoryEvent, bool) {
	ev, ok := m.touched[addr]
	if !ok {
		ev = &events.MemoryEvent{Addr: addr}
		m.touched[addr] = ev
		m.order = append(m.order, addr)
	}
	return ev, !ok
}

// read returns the current value at addr and advances its timestamp to
// t, leaving the value unchanged.
func (m *memoryController) read(addr uint32, t uint32) events.MemoryReadRecord {
	prev := m.canonical[addr] // zero value: {Value:0, Timestamp:0}
	rec := events.MemoryReadRecord{
		Value:         prev.Value,
		Timestamp:     t,
		PrevTimestamp: prev.Timestamp,
	}
	m.canonical[addr] = events.MemoryRecord{Value: prev.Value, Timestamp: t}

	ev, firstTouch := m.recordAccess(addr)
	if firstTouch {
		ev.Initial = events.MemoryRecord{Value: prev.Value, Timestamp: prev.Timestamp}
	}
	ev.Final = events.MemoryRecord{Value: prev.Value, Timestamp: t}
	return rec
}

// write stores v at addr with timestamp t and returns what it replaced.
func (m *memoryController) write(addr uint32, v uint8, t uint32) events.MemoryWriteRecord {
	prev := m.canonical[addr]
	rec := events.MemoryWriteRecord{
		Value:         v,
		Timestamp:     t,
		PrevValue:     prev.Value,
		PrevTimestamp: prev.Timestamp,
	}
	m.canonical[addr] = events.MemoryRecord{Value: v, Timestamp: t}

	ev, firstTouch := m.recordAccess(addr)
	if firstTouch {
		ev.Initial = events.MemoryRecord{Value: prev.Value, Timestamp: prev.Timestamp}
	}
	ev.Final = events.MemoryRecord{Value: v, Timestamp: t}
	return rec
}

// drain returns the accumulated MemoryEvents in first-touch order,
// exactly once, the way the executor hands them to the record on
// completion.
func (m *memoryController) drain() []events.MemoryEvent {
	out := make([]events.MemoryEvent, 0, len(m.order))
	for _, addr := range m.order {
		out = append(out, *m.touched[addr])
	}
	return out
}
