package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a main-loop event for post-mortem analysis
type Event struct {
	Kind   uint8  // Event type code
	Button uint8  // Button involved, if any
	Value  int32  // Digit shown, or the rejected value
	Seq    uint32 // Monotonic sequence number, 0 marks an empty slot
}

// Event type codes
const (
	EvtBoot     = 1 // Initial digit rendered
	EvtPress    = 2 // Pending flag consumed by the loop
	EvtDigit    = 3 // Digit rendered after a press
	EvtBlank    = 4 // Out of range digit blanked
	EvtBusError = 5 // Pixel bus write failed
	EvtLEDError = 6 // Status LED write failed
)

const (
	EventRingSize = 32 // Keep last 32 events
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = true

	// Event ring, written from the main loop only
	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventSeq      uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// RecordEvent appends an event to the ring buffer.
// Never call from interrupt context.
func RecordEvent(kind, button uint8, value int32) {
	eventSeq++
	idx := eventRingHead
	eventRing[idx] = Event{
		Kind:   kind,
		Button: button,
		Value:  value,
		Seq:    eventSeq,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Seq == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns a short label for an event kind
func EventName(kind uint8) string {
	switch kind {
	case EvtBoot:
		return "BOOT"
	case EvtPress:
		return "PRESS"
	case EvtDigit:
		return "DIGIT"
	case EvtBlank:
		return "BLANK"
	case EvtBusError:
		return "BUS_ERR!"
	case EvtLEDError:
		return "LED_ERR!"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing writes the ring buffer through the debug writer
func DumpEventRing() {
	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + EventName(evt.Kind) +
			" seq=" + utoa(evt.Seq) +
			" button=" + Button(evt.Button).String() +
			" value=" + itoa(int(evt.Value)))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the ring buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventSeq = 0
}
