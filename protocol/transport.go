package protocol

import "errors"

const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// MessagePayloadMax is the largest payload that fits in one frame
	MessagePayloadMax = MessageLengthMax - MessageLengthMin
)

var ErrFrameTooLarge = errors.New("frame payload exceeds 64 byte message")

// Framer wraps payloads into CRC protected frames:
//
//	[len][0x10|seq][payload...][crc hi][crc lo][0x7E]
//
// len counts the whole frame including header and trailer.
type Framer struct {
	output  OutputBuffer
	scratch ScratchOutput
	seq     uint8
}

// NewFramer creates a Framer that appends frames to output
func NewFramer(output OutputBuffer) *Framer {
	return &Framer{output: output}
}

// EncodeFrame builds one frame from the bytes frameData writes.
// Nothing reaches the output if the payload is too large.
func (f *Framer) EncodeFrame(frameData func(output OutputBuffer)) error {
	f.scratch.Reset()
	frameData(&f.scratch)
	payload := f.scratch.Result()
	if len(payload) > MessagePayloadMax {
		return ErrFrameTooLarge
	}

	cursor := f.output.CurPosition()
	seq := MessageDest | (f.seq & MessageSeqMask)
	f.output.Output([]byte{uint8(len(payload) + MessageLengthMin), seq})
	f.output.Output(payload)

	crc := CRC16(f.output.DataSince(cursor))
	f.output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	f.seq = (f.seq + 1) & MessageSeqMask
	return nil
}

// FrameHandler receives the sequence number and payload of a valid frame.
// The payload is only valid for the duration of the call.
type FrameHandler func(seq uint8, payload []byte)

// Decoder reassembles frames from a byte stream and drops anything that
// fails the length, destination, sync or CRC checks.
type Decoder struct {
	pending []byte
	lost    bool // true while hunting for a sync byte
	errors  uint32
	frames  uint32
}

// NewDecoder creates a decoder. It starts synchronized; a stream joined
// mid-frame costs one error and a resync.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends data and calls handler for every complete frame.
// Partial frames are kept until more data arrives.
func (d *Decoder) Feed(data []byte, handler FrameHandler) {
	d.pending = append(d.pending, data...)
	buf := d.pending

	for len(buf) > 0 {
		if d.lost {
			// Look for sync byte to resynchronize
			syncPos := -1
			for i, b := range buf {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}

			if syncPos < 0 {
				// No sync byte found - discard all data
				buf = nil
				break
			}
			buf = buf[syncPos+1:]
			d.lost = false
			continue
		}

		// Skip leading sync bytes
		if buf[0] == MessageValueSync {
			buf = buf[1:]
			continue
		}

		// Need at least minimum message length
		if len(buf) < MessageLengthMin {
			break
		}

		msgLen := int(buf[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := buf[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for full message
		if len(buf) < msgLen {
			break
		}

		if buf[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(buf[msgLen-MessageTrailerCRC])<<8 |
			uint16(buf[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(buf[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		d.frames++
		if handler != nil {
			handler(seq&MessageSeqMask, buf[MessageHeaderSize:msgLen-MessageTrailerSize])
		}
		buf = buf[msgLen:]
	}

	// Keep the unconsumed tail at the front of pending
	d.pending = append(d.pending[:0], buf...)
}

// desync drops into resynchronisation; the byte that caused it is skipped
// by the sync search on the next pass.
func (d *Decoder) desync() {
	d.lost = true
	d.errors++
}

// Errors returns the number of rejected frames
func (d *Decoder) Errors() uint32 {
	return d.errors
}

// Frames returns the number of accepted frames
func (d *Decoder) Frames() uint32 {
	return d.frames
}

// Reset forgets buffered data, e.g. after the port was reopened
func (d *Decoder) Reset() {
	d.pending = d.pending[:0]
	d.lost = false
}
