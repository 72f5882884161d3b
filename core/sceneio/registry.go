// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package sceneio implements JSON marshalling and unmarshalling of
// interface-typed values (Shape, Material, Light) by name: not a scene
// *file* format, but the in-process encoding that lets tests and
// programmatic scene construction round-trip a concrete value through
// an interface-typed field without the caller naming the concrete type
// up front.
package sceneio

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

var (
	typeRegistry  = make(map[string]reflect.Type)
	registryMutex sync.RWMutex
)

// Register records v's concrete type under its type name so Unmarshal
// can later reconstruct it. Call this once per concrete type, typically
// from that type's init().
func Register(v any) {
	typ := reflect.TypeOf(v)
	name := typ.Name()
	if typ.Kind() == reflect.Ptr {
		name = typ.Elem().Name()
		typ = typ.Elem()
	}
	if name == "" {
		panic("sceneio: cannot register a type with no name")
	}
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := typeRegistry[name]; exists {
		panic(fmt.Sprintf("sceneio: type %q is already registered", name))
	}
	typeRegistry[name] = typ
}

func lookup(name string) (reflect.Type, bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	t, ok := typeRegistry[name]
	return t, ok
}

// Marshal encodes v wrapped with its registered type name, so Unmarshal
// can later recover the concrete type from the encoded bytes alone.
func Marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, fmt.Errorf("sceneio: cannot marshal a nil value")
	}
	typ := reflect.TypeOf(v)
	name := typ.Name()
	if typ.Kind() == reflect.Ptr {
		name = typ.Elem().Name()
	}
	if name == "" {
		return nil, fmt.Errorf("sceneio: cannot marshal a type with no name: %T", v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sceneio: marshal %s: %w", name, err)
	}
	wrapped := struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{Type: name, Data: data}
	return json.Marshal(wrapped)
}

// Unmarshal decodes data produced by Marshal, returning a pointer to a
// freshly allocated value of the registered concrete type.
func Unmarshal(data json.RawMessage) (any, error) {
	var wrapper struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("sceneio: unmarshal envelope: %w", err)
	}
	t, ok := lookup(wrapper.Type)
	if !ok {
		return nil, fmt.Errorf("sceneio: unregistered type %q; has it been registered?", wrapper.Type)
	}
	out := reflect.New(t).Interface()
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		return nil, fmt.Errorf("sceneio: unmarshal %s: %w", wrapper.Type, err)
	}
	return out, nil
}
