package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// condition translates a filter into a clause on e's table. A relation path
// becomes one IN (subquery) per hop, so the root query never needs a join
// and its row count stays exact under LIMIT.
func (c *Composer) condition(e *entity, f Filter) (clause.Expression, error) {
	hops, col, err := c.reg.resolvePath(e, f.Path)
	if err != nil {
		return nil, err
	}

	column := clause.Column{Table: clause.CurrentTable, Name: col}
	var expr clause.Expression
	switch f.Op {
	case OpEq:
		expr = clause.Eq{Column: column, Value: f.Value}
	case OpIn:
		expr = clause.IN{Column: column, Values: toValues(f.Value)}
	case OpContains:
		expr = clause.Expr{
			SQL:  "? LIKE ? ESCAPE '\\'",
			Vars: []interface{}{column, "%" + likeEscaper.Replace(f.Value.(string)) + "%"},
		}
	default:
		return nil, queryErrorf("filter %q: unknown operator %q", f.Path, f.Op)
	}

	for i := len(hops) - 1; i >= 0; i-- {
		expr = c.through(hops[i], expr)
	}
	return expr, nil
}

// through rewrites a condition on rel's target into a condition on rel's
// source.
func (c *Composer) through(rel *Relation, cond clause.Expression) clause.Expression {
	target := c.reg.entities[rel.Target]

	sub := c.db.Session(&gorm.Session{NewDB: true}).
		Table(target.schema.Table).
		Select(rel.remoteKey)
	if cond != nil {
		sub = sub.Where(cond)
	}

	if rel.Kind == ManyToMany {
		sub = c.db.Session(&gorm.Session{NewDB: true}).
			Table(rel.JoinTable).
			Select(rel.joinLocal).
			Where(clause.Expr{
				SQL:  "? IN (?)",
				Vars: []interface{}{clause.Column{Table: clause.CurrentTable, Name: rel.joinRemote}, sub},
			})
	}

	return clause.Expr{
		SQL:  "? IN (?)",
		Vars: []interface{}{clause.Column{Table: clause.CurrentTable, Name: rel.localKey}, sub},
	}
}

// conditions translates a filter list; nil when the list is empty.
func (c *Composer) conditions(e *entity, filters []Filter) (clause.Expression, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		expr, err := c.condition(e, f)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return clause.And(exprs...), nil
}

// likeEscaper makes a Contains value match literally under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func toValues(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values
}

// parsePrimaryKey converts a raw key (typically a path parameter) to the Go
// type of the primary key field.
func parsePrimaryKey(field *schema.Field, raw interface{}) (interface{}, error) {
	s := fmt.Sprint(raw)
	typ := field.FieldType
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	switch typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return nil, queryErrorf("malformed primary key %q", s)
		}
		return reflect.ValueOf(n).Convert(typ).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return nil, queryErrorf("malformed primary key %q", s)
		}
		return reflect.ValueOf(n).Convert(typ).Interface(), nil
	case reflect.String:
		if s == "" {
			return nil, queryErrorf("empty primary key")
		}
		return s, nil
	}
	return nil, queryErrorf("unsupported primary key type %s", typ)
}
