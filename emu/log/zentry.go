package log

import (
	"fmt"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// LogContext lets a package inject ambient fields (current frame number,
// PC, scanline) into every structured log entry without every call site
// threading them through by hand. Registered contexts run once per EntryZ,
// right before it's emitted.
type LogContext interface {
	AddLogContext(z *EntryZ)
}

var contexts []LogContext

func RegisterLogContext(c LogContext) { contexts = append(contexts, c) }

const maxZFields = 8

// EntryZ is a fixed-size structured log entry built by chaining the typed
// field methods below, then flushed with End. Module.DebugZ and friends
// return nil when the level is disabled, and every method here tolerates a
// nil receiver, so call sites never need their own Enabled() guard:
//
//	ModPPU.DebugZ("sprite overflow").Int("scanline", p.Scanline).End()
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

func NewEntryZ() *EntryZ { return &EntryZ{} }

func (z *EntryZ) add(f ZField) *EntryZ {
	if z == nil {
		return nil
	}
	if z.zfidx < len(z.zfbuf) {
		z.zfbuf[z.zfidx] = f
		z.zfidx++
	}
	return z
}

func (z *EntryZ) String(key, val string) *EntryZ {
	return z.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (z *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return z.add(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	return z.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (z *EntryZ) Uint8(key string, val uint8) *EntryZ   { return z.uint(key, uint64(val)) }
func (z *EntryZ) Uint16(key string, val uint16) *EntryZ { return z.uint(key, uint64(val)) }
func (z *EntryZ) Uint32(key string, val uint32) *EntryZ { return z.uint(key, uint64(val)) }
func (z *EntryZ) Uint64(key string, val uint64) *EntryZ { return z.uint(key, val) }

func (z *EntryZ) uint(key string, val uint64) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	return z.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Err(key string, err error) *EntryZ {
	return z.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (z *EntryZ) Duration(key string, val time.Duration) *EntryZ {
	return z.add(ZField{Type: FieldTypeDuration, Key: key, Duration: val})
}

// End formats and emits the entry. A nil receiver (the level was disabled
// when the entry was created) is a no-op.
func (z *EntryZ) End() {
	if z == nil {
		return
	}
	for _, c := range contexts {
		c.AddLogContext(z)
	}

	fields := make(logrus.Fields, z.zfidx)
	for _, f := range z.zfbuf[:z.zfidx] {
		fields[f.Key] = f.Value()
	}
	e := logrus.StandardLogger().WithField("_mod", modNames[z.mod]).WithFields(fields)
	switch z.lvl {
	case PanicLevel:
		e.Panic(z.msg)
	case FatalLevel:
		e.Fatal(z.msg)
	case ErrorLevel:
		e.Error(z.msg)
	case WarnLevel:
		e.Warn(z.msg)
	case InfoLevel:
		e.Info(z.msg)
	default:
		e.Debug(z.msg)
	}
}
