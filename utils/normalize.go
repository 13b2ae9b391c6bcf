package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims string fields and rounds float64 fields on a
// pointer-to-struct DTO, recursing into nested structs. Applied to detail
// and totals payloads before they touch a draft so the remote record never
// sees padded strings or sub-cent noise in the configured amounts.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	normalizeStruct(v.Elem())
}

func normalizeStruct(s reflect.Value) {
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Float64:
			f.SetFloat(Round2(f.Float()))
		case reflect.Struct:
			normalizeStruct(f)
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			switch e := f.Elem(); e.Kind() {
			case reflect.String:
				e.SetString(strings.TrimSpace(e.String()))
			case reflect.Float64:
				e.SetFloat(Round2(e.Float()))
			default:
				normalizeStruct(e)
			}
		}
	}
}
