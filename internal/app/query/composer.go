package query

import (
	"context"
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit   = 200
	MaxLimit       = 500
	DefaultTimeout = 5 * time.Second
)

type Options struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
}

// Composer turns a Query into one root SELECT plus one batched SELECT per
// include level, and shapes the loaded structs into Records.
type Composer struct {
	db   *gorm.DB
	reg  *Registry
	opts Options
}

func NewComposer(db *gorm.DB, reg *Registry, opts Options) *Composer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = MaxLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	return &Composer{db: db, reg: reg, opts: opts}
}

func (c *Composer) Registry() *Registry {
	return c.reg
}

// Find returns the shaped rows of q. Limit 0 means the default limit and
// limits above the maximum are clamped. With no explicit order and no Random
// flag, rows come back in primary key order.
func (c *Composer) Find(ctx context.Context, q Query) ([]Record, error) {
	if err := c.reg.Validate(q); err != nil {
		return nil, err
	}
	root, _ := c.reg.entity(q.Entity)

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	tx, err := c.build(ctx, root, q)
	if err != nil {
		return nil, err
	}
	tx = c.ordered(tx, root, q)
	tx = tx.Limit(c.limit(q.Limit))

	rows := reflect.New(reflect.SliceOf(reflect.PtrTo(root.typ)))
	if err := tx.Find(rows.Interface()).Error; err != nil {
		return nil, classify(err)
	}

	s := &shaper{ctx: ctx, reg: c.reg}
	return s.shapeAll(root, q, rows.Elem()), nil
}

// FindByPK fetches the single row of q.Entity whose primary key is id. A key
// that cannot be converted to the primary key type is a query error; a key
// with no row, or whose row fails a Required include, is ErrNotFound.
func (c *Composer) FindByPK(ctx context.Context, q Query, id interface{}) (Record, error) {
	if err := c.reg.Validate(q); err != nil {
		return nil, err
	}
	root, _ := c.reg.entity(q.Entity)

	key, err := parsePrimaryKey(root.pk, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	tx, err := c.build(ctx, root, q)
	if err != nil {
		return nil, err
	}
	tx = tx.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: root.pk.DBName}, Value: key})

	row := reflect.New(root.typ)
	if err := tx.Take(row.Interface()).Error; err != nil {
		return nil, classify(err)
	}

	s := &shaper{ctx: ctx, reg: c.reg}
	rec, ok := s.row(root, q.Entity, q.Attributes, q.Include, row, nil)
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (c *Composer) limit(n int) int {
	if n == 0 {
		return c.opts.DefaultLimit
	}
	if n > c.opts.MaxLimit {
		return c.opts.MaxLimit
	}
	return n
}

// build prepares the root statement: projection, filters, top level Required
// includes as existence subqueries, and the preload tree.
func (c *Composer) build(ctx context.Context, root *entity, q Query) (*gorm.DB, error) {
	tx := c.db.WithContext(ctx).Model(reflect.New(root.typ).Interface())
	tx = tx.Select(c.selectList(root, q.Entity, q.Attributes, q.Include, ""))

	cond, err := c.conditions(root, q.Where)
	if err != nil {
		return nil, err
	}
	if cond != nil {
		tx = tx.Where(cond)
	}

	for _, inc := range q.Include {
		if !inc.Required {
			continue
		}
		rel := root.relations[inc.Alias]
		target := c.reg.entities[rel.Target]
		incCond, err := c.conditions(target, inc.Where)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(c.through(rel, incCond))
	}

	return c.preload(tx, root, q.Entity, q.Include, "")
}

func (c *Composer) ordered(tx *gorm.DB, root *entity, q Query) *gorm.DB {
	if q.Random {
		return tx.Order("RANDOM()")
	}
	return applyOrder(tx, root, q.Order)
}

// applyOrder adds the requested ordering followed by a primary key tiebreak.
func applyOrder(tx *gorm.DB, e *entity, order []Order) *gorm.DB {
	pkOrdered := false
	for _, o := range order {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: o.Field},
			Desc:   o.Desc,
		})
		if o.Field == e.pk.DBName {
			pkOrdered = true
		}
	}
	if !pkOrdered {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: e.pk.DBName}})
	}
	return tx
}

// preload registers one Preload per include, keyed by the dotted struct field
// path GORM expects ("Items.Course.Images").
func (c *Composer) preload(tx *gorm.DB, parent *entity, parentAlias string, includes []Include, prefix string) (*gorm.DB, error) {
	for _, inc := range includes {
		inc := inc
		rel := parent.relations[inc.Alias]
		target := c.reg.entities[rel.Target]

		cond, err := c.conditions(target, inc.Where)
		if err != nil {
			return nil, err
		}
		cols := c.selectList(target, inc.Alias, inc.Attributes, inc.Include, rel.remoteKey)
		if inc.Correlate != nil {
			cols = appendUnique(cols, inc.Correlate.Field)
		}

		path := prefix + rel.Field
		tx = tx.Preload(path, func(db *gorm.DB) *gorm.DB {
			db = db.Select(cols)
			if cond != nil {
				db = db.Where(cond)
			}
			if rel.Kind.plural() {
				db = applyOrder(db, target, inc.Order)
			}
			return db
		})

		tx, err = c.preload(tx, target, inc.Alias, inc.Include, path+".")
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// selectList is the projection plus every column needed to stitch the
// include tree together: the primary key, the key joining e to its parent,
// the local keys of e's own includes and any column a descendant correlates
// on.
func (c *Composer) selectList(e *entity, alias string, attrs []string, includes []Include, remoteKey string) []string {
	cols := append([]string(nil), projection(e, attrs)...)
	cols = appendUnique(cols, e.pk.DBName)
	if remoteKey != "" {
		cols = appendUnique(cols, remoteKey)
	}
	for _, inc := range includes {
		cols = appendUnique(cols, e.relations[inc.Alias].localKey)
	}
	for _, f := range correlatedFields(alias, includes) {
		cols = appendUnique(cols, f)
	}
	return cols
}

// correlatedFields collects the AncestorField of every descendant correlating
// on alias. A subtree that reuses alias shadows it and is not searched.
func correlatedFields(alias string, includes []Include) []string {
	var fields []string
	for _, inc := range includes {
		if inc.Correlate != nil && inc.Correlate.Ancestor == alias {
			fields = append(fields, inc.Correlate.AncestorField)
		}
		if inc.Alias == alias {
			continue
		}
		fields = append(fields, correlatedFields(alias, inc.Include)...)
	}
	return fields
}

func appendUnique(cols []string, col string) []string {
	for _, c := range cols {
		if c == col {
			return cols
		}
	}
	return append(cols, col)
}
