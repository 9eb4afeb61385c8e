package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// tag is the parsed form of a `hwio:"..."` struct tag.
type tag struct {
	hasOffset bool
	offset    uint16
	bank      int
	readonly  bool
	writeonly bool
	rcb       bool
	wcb       bool
	pcb       bool
	size      int
	vsize     int
}

func parseTag(raw string) (tag, error) {
	var t tag
	if raw == "" {
		return t, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, hasVal := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "offset":
			if !hasVal {
				return t, fmt.Errorf("hwio: offset requires a value")
			}
			n, err := strconv.ParseUint(val, 0, 16)
			if err != nil {
				return t, fmt.Errorf("hwio: bad offset %q: %w", val, err)
			}
			t.hasOffset = true
			t.offset = uint16(n)
		case "bank":
			n, err := strconv.Atoi(val)
			if err != nil {
				return t, fmt.Errorf("hwio: bad bank %q: %w", val, err)
			}
			t.bank = n
		case "size":
			n, err := strconv.Atoi(val)
			if err != nil {
				return t, fmt.Errorf("hwio: bad size %q: %w", val, err)
			}
			t.size = n
		case "vsize":
			n, err := strconv.Atoi(val)
			if err != nil {
				return t, fmt.Errorf("hwio: bad vsize %q: %w", val, err)
			}
			t.vsize = n
		case "readonly":
			t.readonly = true
		case "writeonly":
			t.writeonly = true
		case "rcb":
			t.rcb = true
		case "wcb":
			t.wcb = true
		case "pcb":
			t.pcb = true
		default:
			return t, fmt.Errorf("hwio: unknown tag key %q", key)
		}
	}
	return t, nil
}

type regInfo struct {
	offset uint16
	regPtr any
}

// bankGetRegs walks bank's fields (bank is a struct or pointer to struct)
// and returns every hwio-tagged field belonging to bankNum that declares an
// offset, wiring up callbacks as MustInitRegs would along the way.
func bankGetRegs(bank any, bankNum int) ([]regInfo, error) {
	if err := initRegs(bank); err != nil {
		return nil, err
	}

	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("hwio: bank must be a pointer, got %T", bank)
	}
	sv := v.Elem()
	st := sv.Type()

	var regs []regInfo
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		raw, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		t, err := parseTag(raw)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		if !t.hasOffset || t.bank != bankNum {
			continue
		}
		fv := sv.Field(i)
		regs = append(regs, regInfo{offset: t.offset, regPtr: fv.Addr().Interface()})
	}
	return regs, nil
}

// MustInitRegs wires ReadCb/WriteCb/PeekCb on every hwio-tagged Reg8/Mem/
// Manual field of bank by reflection, binding Read<Field>/Write<Field>/
// Peek<Field> methods declared on bank's pointer receiver, and applying the
// readonly/writeonly flags from the tag. It panics on any tag or method
// binding error, since those are always a programming mistake.
func MustInitRegs(bank any) {
	if err := initRegs(bank); err != nil {
		panic(err)
	}
}

func initRegs(bank any) error {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	sv := v.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		raw, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		t, err := parseTag(raw)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}

		fv := sv.Field(i)
		switch reg := fv.Addr().Interface().(type) {
		case *Reg8:
			if reg.Name == "" {
				reg.Name = f.Name
			}
			if t.readonly {
				reg.Flags |= ReadOnlyFlag
			}
			if t.writeonly {
				reg.Flags |= WriteOnlyFlag
			}
			if t.rcb {
				cb, err := bindMethod[func(uint8) uint8](v, "Read"+f.Name)
				if err != nil {
					return err
				}
				reg.ReadCb = cb
			}
			if t.wcb {
				cb, err := bindMethod[func(uint8, uint8)](v, "Write"+f.Name)
				if err != nil {
					return err
				}
				reg.WriteCb = cb
			}
			if t.pcb {
				cb, err := bindMethod[func(uint8) uint8](v, "Peek"+f.Name)
				if err != nil {
					return err
				}
				reg.PeekCb = cb
			}
		case *Mem:
			if reg.Name == "" {
				reg.Name = f.Name
			}
			if t.readonly {
				reg.Flags |= MemFlag8ReadOnly
			}
			if t.writeonly {
				reg.Flags |= MemFlag8WriteOnly
			}
			if reg.Data == nil && t.size > 0 {
				reg.Data = make([]uint8, t.size)
			}
			if t.vsize > 0 {
				reg.VSize = t.vsize
			} else if reg.VSize == 0 {
				reg.VSize = len(reg.Data)
			}
		case *Manual:
			if reg.Name == "" {
				reg.Name = f.Name
			}
			if t.size > 0 {
				reg.Size = t.size
			}
			if t.rcb {
				cb, err := bindMethod[func(uint16, bool) uint8](v, "Read"+f.Name)
				if err != nil {
					return err
				}
				reg.ReadCb = cb
			}
			if t.wcb {
				cb, err := bindMethod[func(uint16, uint8)](v, "Write"+f.Name)
				if err != nil {
					return err
				}
				reg.WriteCb = cb
			}
		}
	}
	return nil
}

// bindMethod looks up name on v (a pointer receiver) and type-asserts it to
// T, returning a descriptive error instead of panicking on mismatch so that
// a typo in a Read<Field>/Write<Field> method name fails with a clear
// message rather than a generic reflect panic.
func bindMethod[T any](v reflect.Value, name string) (T, error) {
	var zero T
	m := v.MethodByName(name)
	if !m.IsValid() {
		return zero, fmt.Errorf("hwio: %s has no method %s", v.Type(), name)
	}
	fn, ok := m.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("hwio: %s.%s has wrong signature: got %T, want %T", v.Type(), name, m.Interface(), zero)
	}
	return fn, nil
}
