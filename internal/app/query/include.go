package query

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm/schema"
)

type Op string

const (
	OpEq       Op = "eq"
	OpIn       Op = "in"
	OpContains Op = "contains"
)

// Filter restricts rows by a column of the entity it is attached to, or by a
// column reached through registered aliases ("category.parent_id").
type Filter struct {
	Path  string
	Op    Op
	Value interface{}
}

func Eq(path string, value interface{}) Filter {
	return Filter{Path: path, Op: OpEq, Value: value}
}

func In(path string, values interface{}) Filter {
	return Filter{Path: path, Op: OpIn, Value: values}
}

func Contains(path, substr string) Filter {
	return Filter{Path: path, Op: OpContains, Value: substr}
}

type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// Include requests a related entity through a registered alias.
//
// Attributes nil means every column. Required restricts the parent to rows
// that have at least one related row matching Where.
type Include struct {
	Alias      string
	Attributes []string
	Where      []Filter
	Order      []Order
	Include    []Include
	Required   bool
	Correlate  *Correlation
}

// Query describes one composed fetch rooted at Entity.
type Query struct {
	Entity     string
	Attributes []string
	Where      []Filter
	Include    []Include
	Order      []Order
	Random     bool
	Limit      int
}

// Validate checks every attribute, filter path, alias and correlation of q
// against the registry. Errors wrap ErrQuery.
func (reg *Registry) Validate(q Query) error {
	root, err := reg.entity(q.Entity)
	if err != nil {
		return err
	}
	if q.Limit < 0 {
		return queryErrorf("limit must not be negative, got %d", q.Limit)
	}
	if q.Random && len(q.Order) > 0 {
		return queryErrorf("random order cannot be combined with explicit order")
	}
	if err := reg.validateLevel(root, q.Entity, q.Attributes, q.Where, q.Order); err != nil {
		return err
	}
	return reg.validateIncludes(root, q.Include, []ancestor{{alias: q.Entity, entity: root}}, q.Entity)
}

type ancestor struct {
	alias  string
	entity *entity
}

func (reg *Registry) validateIncludes(parent *entity, includes []Include, chain []ancestor, path string) error {
	seen := make(map[string]bool, len(includes))
	for _, inc := range includes {
		incPath := path + "." + inc.Alias
		if seen[inc.Alias] {
			return queryErrorf("%s: alias included twice", incPath)
		}
		seen[inc.Alias] = true

		rel, ok := parent.relations[inc.Alias]
		if !ok {
			return queryErrorf("%s: %q is not a registered relation of %s", incPath, inc.Alias, parent.name)
		}
		target := reg.entities[rel.Target]
		if err := reg.validateLevel(target, incPath, inc.Attributes, inc.Where, inc.Order); err != nil {
			return err
		}
		if inc.Correlate != nil {
			if err := inc.Correlate.validate(chain, target, incPath); err != nil {
				return err
			}
		}
		next := append(append([]ancestor(nil), chain...), ancestor{alias: inc.Alias, entity: target})
		if err := reg.validateIncludes(target, inc.Include, next, incPath); err != nil {
			return err
		}
	}
	return nil
}

func (reg *Registry) validateLevel(e *entity, path string, attrs []string, where []Filter, order []Order) error {
	for _, a := range attrs {
		if _, ok := e.column(a); !ok {
			return queryErrorf("%s: unknown attribute %q", path, a)
		}
	}
	for _, f := range where {
		if err := reg.validateFilter(e, f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, o := range order {
		if _, ok := e.column(o.Field); !ok {
			return queryErrorf("%s: cannot order by unknown attribute %q", path, o.Field)
		}
	}
	return nil
}

func (reg *Registry) validateFilter(e *entity, f Filter) error {
	hops, col, err := reg.resolvePath(e, f.Path)
	if err != nil {
		return err
	}
	last := e
	if len(hops) > 0 {
		last = reg.entities[hops[len(hops)-1].Target]
	}
	field, _ := last.column(col)

	switch f.Op {
	case OpEq:
	case OpIn:
		v := reflect.ValueOf(f.Value)
		if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
			return queryErrorf("filter %q: in expects a list", f.Path)
		}
	case OpContains:
		if _, ok := f.Value.(string); !ok {
			return queryErrorf("filter %q: contains expects a string", f.Path)
		}
		if field.GORMDataType != schema.String {
			return queryErrorf("filter %q: contains on a non-text column", f.Path)
		}
	default:
		return queryErrorf("filter %q: unknown operator %q", f.Path, f.Op)
	}
	return nil
}

// resolvePath splits "a.b.col" into the relation hops a, b and the trailing
// column, checking each step against the registry.
func (reg *Registry) resolvePath(e *entity, path string) ([]*Relation, string, error) {
	parts := strings.Split(path, ".")
	if path == "" {
		return nil, "", queryErrorf("empty filter path")
	}
	hops := make([]*Relation, 0, len(parts)-1)
	cur := e
	for _, alias := range parts[:len(parts)-1] {
		rel, ok := cur.relations[alias]
		if !ok {
			return nil, "", queryErrorf("path %q: %q is not a registered relation of %s", path, alias, cur.name)
		}
		hops = append(hops, rel)
		cur = reg.entities[rel.Target]
	}
	col := parts[len(parts)-1]
	if _, ok := cur.column(col); !ok {
		return nil, "", queryErrorf("path %q: unknown attribute %q on %s", path, col, cur.name)
	}
	return hops, col, nil
}
