package events

// IoEvent backs a single `,` or `.` cycle.
type IoEvent struct {
	Pc       uint32
	Mp       uint32
	Mv       uint8
	IsInput  bool // false => output
}
