package query

import (
	"context"
	"reflect"
)

// Record is one shaped entity: its projected attributes plus one entry per
// included alias. Collections are []Record (never nil), singular relations
// are Record or nil.
type Record map[string]interface{}

// Records is a convenience for reading a collection entry back out of a
// Record.
func (r Record) Records(alias string) []Record {
	list, _ := r[alias].([]Record)
	return list
}

// Record reads a singular relation entry; nil when absent.
func (r Record) Record(alias string) Record {
	rec, _ := r[alias].(Record)
	return rec
}

// shaper converts loaded model structs into Records. Only projected
// attributes are copied, so keys loaded for stitching rows together never
// reach the output.
type shaper struct {
	ctx context.Context
	reg *Registry
}

func (s *shaper) shapeAll(root *entity, q Query, rows reflect.Value) []Record {
	out := make([]Record, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		rec, ok := s.row(root, q.Entity, q.Attributes, q.Include, rows.Index(i), nil)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

// row shapes a single struct. It reports false when a Required include came
// back empty, in which case the caller drops the row.
func (s *shaper) row(e *entity, alias string, attrs []string, includes []Include, v reflect.Value, scopes []scope) (Record, bool) {
	v = reflect.Indirect(v)
	rec := make(Record, len(attrs)+len(includes))
	for _, name := range projection(e, attrs) {
		f, _ := e.column(name)
		val, _ := f.ValueOf(s.ctx, v)
		rec[name] = val
	}

	scopes = append(scopes[:len(scopes):len(scopes)], scope{alias: alias, entity: e, value: v})

	for _, inc := range includes {
		rel := e.relations[inc.Alias]
		target := s.reg.entities[rel.Target]
		fv := v.FieldByName(rel.Field)

		var key interface{}
		correlated := false
		if inc.Correlate != nil {
			key, correlated = inc.Correlate.correlationKey(s.ctx, scopes)
		}

		if rel.Kind.plural() {
			list := make([]Record, 0, fv.Len())
			for i := 0; i < fv.Len(); i++ {
				elem := fv.Index(i)
				if correlated && !inc.Correlate.keep(s.ctx, target, elem, key) {
					continue
				}
				child, ok := s.row(target, inc.Alias, inc.Attributes, inc.Include, elem, scopes)
				if ok {
					list = append(list, child)
				}
			}
			if inc.Required && len(list) == 0 {
				return nil, false
			}
			rec[inc.Alias] = list
			continue
		}

		var child Record
		if !fv.IsNil() && (!correlated || inc.Correlate.keep(s.ctx, target, fv.Elem(), key)) {
			if c, ok := s.row(target, inc.Alias, inc.Attributes, inc.Include, fv.Elem(), scopes); ok {
				child = c
			}
		}
		if child == nil {
			if inc.Required {
				return nil, false
			}
			rec[inc.Alias] = nil
			continue
		}
		rec[inc.Alias] = child
	}
	return rec, true
}

// projection returns the requested attributes, or every column when none
// were requested.
func projection(e *entity, attrs []string) []string {
	if attrs == nil {
		return e.schema.DBNames
	}
	return attrs
}
