// Package distributed implements the message-passing spigot pipeline:
// the same segment-fold algorithm as the in-process worker pipeline, but run
// across ranks connected by a Link instead of goroutines connected by
// channels. Two Link implementations are provided: an in-process transport
// over net.Pipe (local.go, used by the library and by tests) and a real
// multi-process transport over loopback TCP with self-relaunched child
// processes (process.go, used only by the CLI).
package distributed

import (
	"encoding/binary"
	"fmt"
	"io"
)

// tag identifies a wire frame's kind.
type tag byte

const (
	tagCarry tag = 1
	tagEnd   tag = 2
)

// frameSize is the fixed wire size of every message: one tag byte followed
// by a big-endian int32 payload (unused but present on END frames, so every
// frame is the same size).
const frameSize = 1 + 4

// Link is the minimal point-to-point message primitive a rank needs. A
// net.Conn satisfies it directly; so does either end of a net.Pipe().
type Link interface {
	io.Reader
	io.Writer
	Close() error
}

// sendCarry writes a CARRY frame carrying value v.
func sendCarry(l Link, v int32) error {
	return sendFrame(l, tagCarry, v)
}

// sendEnd writes the END sentinel frame.
func sendEnd(l Link) error {
	return sendFrame(l, tagEnd, 0)
}

func sendFrame(l Link, t tag, v int32) error {
	var buf [frameSize]byte
	buf[0] = byte(t)
	binary.BigEndian.PutUint32(buf[1:], uint32(v))
	_, err := l.Write(buf[:])
	return err
}

// recvFrame reads one frame and reports whether it was an END sentinel.
func recvFrame(l Link) (value int32, end bool, err error) {
	var buf [frameSize]byte
	if _, err := io.ReadFull(l, buf[:]); err != nil {
		return 0, false, err
	}
	switch tag(buf[0]) {
	case tagCarry:
		return int32(binary.BigEndian.Uint32(buf[1:])), false, nil
	case tagEnd:
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("distributed: unknown frame tag %d", buf[0])
	}
}
