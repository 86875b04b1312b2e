// Package events defines the typed per-cycle event kinds the executor
// emits and the ExecutionRecord that collects them. Each event kind is
// consumed by exactly one chip; a new chip always means a new event kind
// here, not an extension of an existing one.
package events

// MemoryRecord is the canonical latest state of one tape cell.
type MemoryRecord struct {
	Value     uint8
	Timestamp uint32
}

// MemoryReadRecord is what a read returns: the value observed plus the
// timestamp it is stamped with and the timestamp it replaces.
type MemoryReadRecord struct {
	Value         uint8
	Timestamp     uint32
	PrevTimestamp uint32
}

// MemoryWriteRecord is what a write returns: the new value/timestamp plus
// what they replace.
type MemoryWriteRecord struct {
	Value         uint8
	Timestamp     uint32
	PrevValue     uint8
	PrevTimestamp uint32
}

// MemoryEvent tracks, for one address, the cell's state just before its
// first access (Initial) and just after its most recent one (Final).
// Initial is sticky; Final is overwritten on every access. The memory-consistency chip closes the
// global multiset argument using exactly these two records per address.
type MemoryEvent struct {
	Addr    uint32
	Initial MemoryRecord
	Final   MemoryRecord
}
