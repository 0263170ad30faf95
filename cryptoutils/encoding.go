package cryptoutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fardream/go-bcs/bcs"
	"github.com/ruteri/tee-intent-signer/interfaces"
)

var (
	// ErrUnknownScope is returned when encoding an intent with a scope that is
	// not registered in interfaces.
	ErrUnknownScope = errors.New("unknown intent scope")

	// ErrUnsupportedPayload is returned when a payload contains a kind that has
	// no BCS representation.
	ErrUnsupportedPayload = errors.New("unsupported payload kind")
)

// EncodeIntent returns the canonical BCS encoding of an intent message:
//
//	intent (u8) || timestamp_ms (u64, little endian) || bcs(data)
//
// This is the exact byte sequence the onchain verifier reconstructs, so the
// output depends only on the message and is stable across calls. Payloads
// must be built from BCS-representable kinds (fixed-width integers, bool,
// strings, slices, arrays, structs, pointers as options). Maps, channels,
// funcs, complex numbers and platform-width ints are rejected, including
// inside nested fields; the bcs encoder would otherwise skip some of them.
func EncodeIntent[T any](msg interfaces.IntentMessage[T]) ([]byte, error) {
	if !msg.Intent.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, uint8(msg.Intent))
	}

	if err := checkEncodable(reflect.ValueOf(&msg.Data).Elem(), "data", map[reflect.Type]bool{}); err != nil {
		return nil, err
	}

	encoded, err := bcs.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("bcs encoding failed: %w", err)
	}
	return encoded, nil
}

// checkEncodable rejects kinds with no BCS form anywhere in v. Interfaces are
// checked by their dynamic value; nil pointers and empty slices by their
// element type.
func checkEncodable(v reflect.Value, path string, seen map[reflect.Type]bool) error {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkEncodable(v.Elem(), path, seen)
	case reflect.Pointer:
		if v.IsNil() {
			return checkType(v.Type().Elem(), path, seen)
		}
		return checkEncodable(v.Elem(), path, seen)
	case reflect.Slice, reflect.Array:
		if isScalar(v.Type().Elem().Kind()) {
			return nil
		}
		if v.Len() == 0 {
			return checkType(v.Type().Elem(), path+"[]", seen)
		}
		for i := 0; i < v.Len(); i++ {
			if err := checkEncodable(v.Index(i), fmt.Sprintf("%s[%d]", path, i), seen); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || isSkipped(f) {
				continue
			}
			if err := checkEncodable(v.Field(i), path+"."+f.Name, seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return checkType(v.Type(), path, seen)
	}
}

// checkType is checkEncodable for values that are absent (nil or empty).
func checkType(t reflect.Type, path string, seen map[reflect.Type]bool) error {
	switch kind := t.Kind(); {
	case isScalar(kind), kind == reflect.Interface:
		return nil
	case kind == reflect.Pointer, kind == reflect.Slice, kind == reflect.Array:
		return checkType(t.Elem(), path+"[]", seen)
	case kind == reflect.Struct:
		if seen[t] {
			return nil
		}
		seen[t] = true
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || isSkipped(f) {
				continue
			}
			if err := checkType(f.Type, path+"."+f.Name, seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s at %s", ErrUnsupportedPayload, kind, path)
	}
}

func isScalar(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isSkipped(f reflect.StructField) bool {
	name, _, _ := strings.Cut(f.Tag.Get("bcs"), ",")
	return name == "-"
}
