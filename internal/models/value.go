package models

import "strings"

// ValueKind describes what a Value carries
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueSingle
	ValueMulti
)

// Value is what an option widget emits: a string, a list of strings, or null
type Value struct {
	kind   ValueKind
	single string
	multi  []string
}

// Null returns the absent value
func Null() Value {
	return Value{}
}

// Single wraps one string
func Single(s string) Value {
	return Value{kind: ValueSingle, single: s}
}

// Multi wraps a list of strings; the slice is copied
func Multi(values []string) Value {
	if values == nil {
		return Value{kind: ValueMulti}
	}
	return Value{kind: ValueMulti, multi: append([]string(nil), values...)}
}

// Kind returns the value kind
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty returns true for null, the empty string and the empty list
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueSingle:
		return v.single == ""
	case ValueMulti:
		return len(v.multi) == 0
	}
	return true
}

// String returns the single string, or the list joined by commas
func (v Value) String() string {
	switch v.kind {
	case ValueSingle:
		return v.single
	case ValueMulti:
		return strings.Join(v.multi, ",")
	}
	return ""
}

// Strings returns the value as a list. A single value yields one element.
func (v Value) Strings() []string {
	switch v.kind {
	case ValueSingle:
		if v.single == "" {
			return nil
		}
		return []string{v.single}
	case ValueMulti:
		return append([]string(nil), v.multi...)
	}
	return nil
}
