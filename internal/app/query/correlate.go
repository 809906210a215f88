package query

import (
	"context"
	"fmt"
	"reflect"
)

// Correlation narrows an included collection after it has been loaded.
//
// An element is kept only when its Field equals AncestorField of the nearest
// enclosing row reached through the Ancestor alias. The store loads the full
// collection once per parent; the narrowing is done per ancestor row while
// shaping, so two ancestors sharing the same parent row each get their own
// filtered view.
//
// Course_Order_Item.period -> Course_Datetime.period is the case this
// exists for: the datetimes of a course are narrowed to the period booked
// by each order item.
type Correlation struct {
	Ancestor      string
	AncestorField string
	Field         string
}

func (c *Correlation) validate(chain []ancestor, target *entity, path string) error {
	var anc *entity
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].alias == c.Ancestor {
			anc = chain[i].entity
			break
		}
	}
	if anc == nil {
		return queryErrorf("%s: correlation ancestor %q is not on the include path", path, c.Ancestor)
	}
	if _, ok := anc.column(c.AncestorField); !ok {
		return queryErrorf("%s: correlation field %q is not an attribute of %s", path, c.AncestorField, anc.name)
	}
	if _, ok := target.column(c.Field); !ok {
		return queryErrorf("%s: correlation field %q is not an attribute of %s", path, c.Field, target.name)
	}
	return nil
}

// scope is one row on the path from the root down to the row being shaped.
type scope struct {
	alias  string
	entity *entity
	value  reflect.Value
}

// correlationKey reads AncestorField from the nearest matching scope.
func (c *Correlation) correlationKey(ctx context.Context, scopes []scope) (interface{}, bool) {
	for i := len(scopes) - 1; i >= 0; i-- {
		s := scopes[i]
		if s.alias != c.Ancestor {
			continue
		}
		f, _ := s.entity.column(c.AncestorField)
		v, _ := f.ValueOf(ctx, s.value)
		return v, true
	}
	return nil, false
}

func (c *Correlation) keep(ctx context.Context, e *entity, row reflect.Value, key interface{}) bool {
	f, _ := e.column(c.Field)
	v, _ := f.ValueOf(ctx, row)
	return sameValue(v, key)
}

func sameValue(a, b interface{}) bool {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) == reflect.TypeOf(b) && reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func deref(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
