package protocol

import "errors"

// ReportKind identifies the meaning of a report frame
type ReportKind uint8

const (
	ReportBoot        ReportKind = 1 // Initial digit shown, Value = digit
	ReportDigit       ReportKind = 2 // Digit changed, Value = digit | button<<8
	ReportRenderError ReportKind = 3 // Bus write failed, Value = digit
	ReportLog         ReportKind = 4 // Debug text in Text
	ReportHalt        ReportKind = 5 // Fatal init error, Value = halt code
)

// Halt codes carried by ReportHalt
const (
	HaltNoStateMachine = 1
	HaltPinInterrupt   = 2
	HaltBusInit        = 3
)

var ErrUnknownReport = errors.New("unknown report kind")

// Report is one status message from the firmware
type Report struct {
	Kind  ReportKind
	Value uint32
	Clock uint32 // Low 32 bits of the microsecond timer
	Text  string // ReportLog only
}

// String returns the kind name
func (k ReportKind) String() string {
	switch k {
	case ReportBoot:
		return "boot"
	case ReportDigit:
		return "digit"
	case ReportRenderError:
		return "render_error"
	case ReportLog:
		return "log"
	case ReportHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// DigitValue packs a digit and the button that produced it
func DigitValue(digit uint8, button uint8) uint32 {
	return uint32(digit) | uint32(button)<<8
}

// Digit returns the digit of a ReportBoot or ReportDigit value
func (r Report) Digit() uint8 {
	return uint8(r.Value & 0xFF)
}

// Button returns the button of a ReportDigit value
func (r Report) Button() uint8 {
	return uint8((r.Value >> 8) & 0xFF)
}

// EncodeReport writes r as one frame. Log text longer than a frame allows
// is truncated.
func EncodeReport(f *Framer, r Report) error {
	return f.EncodeFrame(func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(r.Kind))
		EncodeVLQUint(output, r.Value)
		EncodeVLQUint(output, r.Clock)
		if r.Kind == ReportLog {
			// kind + value take 2 bytes, clock at most 5, length prefix 1
			text := r.Text
			if max := MessagePayloadMax - 8; len(text) > max {
				text = text[:max]
			}
			EncodeVLQString(output, text)
		}
	})
}

// DecodeReport parses a frame payload produced by EncodeReport
func DecodeReport(payload []byte) (Report, error) {
	data := payload

	kind, err := DecodeVLQUint(&data)
	if err != nil {
		return Report{}, err
	}
	value, err := DecodeVLQUint(&data)
	if err != nil {
		return Report{}, err
	}
	clock, err := DecodeVLQUint(&data)
	if err != nil {
		return Report{}, err
	}

	r := Report{Kind: ReportKind(kind), Value: value, Clock: clock}
	switch r.Kind {
	case ReportBoot, ReportDigit, ReportRenderError, ReportHalt:
	case ReportLog:
		r.Text, err = DecodeVLQString(&data)
		if err != nil {
			return Report{}, err
		}
	default:
		return Report{}, ErrUnknownReport
	}
	return r, nil
}
