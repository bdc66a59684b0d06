// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	HexMode         bool   `doc:"hexadecimal input mode"`
	Echo            bool   `doc:"echo commands read from scripts"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		sf := settingsType.Field(i)
		doc, _ := sf.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  sf.Name,
			index: i,
			kind:  sf.Type.Kind(),
			typ:   sf.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(sf.Name), &settingsFields[i])
	}
}

// Display writes every setting, its value and its description to w.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, fld := range settingsFields {
		v := value.Field(i)
		var str string
		switch fld.kind {
		case reflect.Uint16:
			str = fmt.Sprintf("    %-16s $%04X", fld.name, uint16(v.Uint()))
		default:
			str = fmt.Sprintf("    %-16s %v", fld.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", str, f(fld.doc))
	}
}

// Kind returns the kind of the setting whose name starts with 'key', or
// reflect.Invalid if no single setting matches.
func (s *settings) Kind(key string) reflect.Kind {
	fld, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return fld.kind
}

// Set assigns 'value' to the setting whose name starts with 'key'.
func (s *settings) Set(key string, value any) error {
	fld, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (fld.kind == reflect.String) != (vIn.Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(fld.typ) {
		return errors.New(f("invalid type"))
	}

	vOut := reflect.ValueOf(s).Elem().Field(fld.index)
	vOut.Set(vIn.Convert(fld.typ))
	return nil
}
