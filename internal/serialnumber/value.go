// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package serialnumber

import (
	"fmt"
	"strconv"
)

// Kind classifies a registry property value.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindOther:
		return "other"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a property value read from the platform registry. The registry
// is a generic property store, so a value may be missing, textual, or of
// any other type.
type Value struct {
	kind Kind
	text string
	// typ describes the foreign type of a KindOther value.
	typ string
}

// Absent returns the value of a missing property.
func Absent() Value { return Value{kind: KindAbsent} }

// Text returns a textual value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Other returns a non-textual value whose type is described by typ.
func Other(typ string) Value { return Value{kind: KindOther, typ: typ} }

// ValueOf classifies a dynamically decoded value such as the ones produced
// by a plist decoder.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Absent()
	case string:
		return Text(v)
	default:
		return Other(fmt.Sprintf("%T", v))
	}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.text)
	case KindOther:
		return "<" + v.typ + ">"
	default:
		return "<absent>"
	}
}

// Extract narrows v to a serial number. It succeeds only for non-empty
// text, which is returned unchanged.
func Extract(v Value) (string, bool) {
	switch v.kind {
	case KindAbsent:
		return "", false
	case KindText:
		if v.text == "" {
			return "", false
		}
		return v.text, true
	default:
		return "", false
	}
}
