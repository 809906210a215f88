package query

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"gorm.io/gorm/schema"
)

// Kind is the direction and cardinality of a relation.
type Kind string

const (
	HasMany    Kind = "has_many"
	HasOne     Kind = "has_one"
	BelongsTo  Kind = "belongs_to"
	ManyToMany Kind = "many_to_many"
)

func (k Kind) plural() bool {
	return k == HasMany || k == ManyToMany
}

func (k Kind) schemaType() schema.RelationshipType {
	switch k {
	case HasMany:
		return schema.HasMany
	case HasOne:
		return schema.HasOne
	case BelongsTo:
		return schema.BelongsTo
	case ManyToMany:
		return schema.Many2Many
	}
	return ""
}

// Relation declares one directed, aliased association.
//
// ForeignKey is the column holding the reference: on Target for HasMany and
// HasOne, on Source for BelongsTo, and the join table column pointing back
// at Source for ManyToMany. JoinForeignKey is the join table column pointing
// at Target.
type Relation struct {
	Source         string
	Alias          string
	Kind           Kind
	Target         string
	Field          string
	ForeignKey     string
	JoinTable      string
	JoinForeignKey string

	// Resolved by Build.
	localKey   string
	remoteKey  string
	joinLocal  string
	joinRemote string
}

func (r Relation) key() string {
	return r.Source + "." + r.Alias
}

func (r Relation) sameDeclaration(o Relation) bool {
	return r.Source == o.Source && r.Alias == o.Alias && r.Kind == o.Kind &&
		r.Target == o.Target && r.Field == o.Field && r.ForeignKey == o.ForeignKey &&
		r.JoinTable == o.JoinTable && r.JoinForeignKey == o.JoinForeignKey
}

type entity struct {
	name      string
	typ       reflect.Type
	schema    *schema.Schema
	pk        *schema.Field
	relations map[string]*Relation
}

// Builder collects entity and relation declarations. It is used once during
// startup; Build turns it into an immutable Registry.
type Builder struct {
	entities  map[string]reflect.Type
	relations map[string]Relation
	order     []string
	errs      []error
}

func NewBuilder() *Builder {
	return &Builder{
		entities:  make(map[string]reflect.Type),
		relations: make(map[string]Relation),
	}
}

// Entity registers a model under name. prototype is a struct or a pointer to
// one, e.g. &model.Course{}.
func (b *Builder) Entity(name string, prototype interface{}) *Builder {
	typ := reflect.TypeOf(prototype)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		b.errs = append(b.errs, &ConfigurationError{Entity: name, Reason: "prototype must be a struct"})
		return b
	}
	if prev, ok := b.entities[name]; ok && prev != typ {
		b.errs = append(b.errs, &ConfigurationError{
			Entity: name,
			Reason: fmt.Sprintf("already registered as %s", prev),
		})
		return b
	}
	b.entities[name] = typ
	return b
}

// Register adds a relation. Registering an identical declaration again is a
// no-op; a conflicting declaration for the same source and alias is an error.
func (b *Builder) Register(relations ...Relation) *Builder {
	for _, r := range relations {
		if prev, ok := b.relations[r.key()]; ok {
			if !prev.sameDeclaration(r) {
				b.errs = append(b.errs, &ConfigurationError{
					Entity: r.Source,
					Alias:  r.Alias,
					Reason: fmt.Sprintf("conflicting declaration (foreign key %q vs %q)", prev.ForeignKey, r.ForeignKey),
				})
			}
			continue
		}
		b.relations[r.key()] = r
		b.order = append(b.order, r.key())
	}
	return b
}

// Build parses every entity with the GORM schema parser and checks each
// relation against the association GORM derived from the struct tags.
func (b *Builder) Build(namer schema.Namer) (*Registry, error) {
	errs := append([]error(nil), b.errs...)

	cache := &sync.Map{}
	reg := &Registry{entities: make(map[string]*entity, len(b.entities))}
	for name, typ := range b.entities {
		s, err := schema.Parse(reflect.New(typ).Interface(), cache, namer)
		if err != nil {
			errs = append(errs, &ConfigurationError{Entity: name, Reason: err.Error()})
			continue
		}
		if s.PrioritizedPrimaryField == nil {
			errs = append(errs, &ConfigurationError{Entity: name, Reason: "no single primary key"})
			continue
		}
		reg.entities[name] = &entity{
			name:      name,
			typ:       typ,
			schema:    s,
			pk:        s.PrioritizedPrimaryField,
			relations: make(map[string]*Relation),
		}
	}

	for _, key := range b.order {
		r := b.relations[key]
		if err := reg.resolve(&r); err != nil {
			errs = append(errs, err)
			continue
		}
		reg.entities[r.Source].relations[r.Alias] = &r
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

// Registry is the process-wide, read-only set of entities and relations.
type Registry struct {
	entities map[string]*entity
}

func (reg *Registry) resolve(r *Relation) error {
	fail := func(format string, args ...interface{}) error {
		return &ConfigurationError{Entity: r.Source, Alias: r.Alias, Reason: fmt.Sprintf(format, args...)}
	}

	src, ok := reg.entities[r.Source]
	if !ok {
		return fail("unknown source entity")
	}
	dst, ok := reg.entities[r.Target]
	if !ok {
		return fail("unknown target entity %q", r.Target)
	}
	if r.Kind.schemaType() == "" {
		return fail("unknown relation kind %q", r.Kind)
	}

	rel, ok := src.schema.Relationships.Relations[r.Field]
	if !ok {
		return fail("struct field %q is not an association", r.Field)
	}
	if rel.Type != r.Kind.schemaType() {
		return fail("declared %s but the struct tags describe %s", r.Kind, rel.Type)
	}
	if rel.FieldSchema.ModelType != dst.typ {
		return fail("field %q points at %s, not %s", r.Field, rel.FieldSchema.ModelType, r.Target)
	}

	fieldKind := rel.Field.FieldType.Kind()
	if r.Kind.plural() && fieldKind != reflect.Slice {
		return fail("field %q must be a slice", r.Field)
	}
	if !r.Kind.plural() && fieldKind != reflect.Ptr {
		return fail("field %q must be a pointer", r.Field)
	}

	switch r.Kind {
	case HasMany, HasOne:
		ref := ownReference(rel, true)
		if ref == nil || ref.ForeignKey.DBName != r.ForeignKey {
			return fail("foreign key %q does not match the schema", r.ForeignKey)
		}
		r.localKey = ref.PrimaryKey.DBName
		r.remoteKey = ref.ForeignKey.DBName
	case BelongsTo:
		ref := ownReference(rel, false)
		if ref == nil || ref.ForeignKey.DBName != r.ForeignKey {
			return fail("foreign key %q does not match the schema", r.ForeignKey)
		}
		r.localKey = ref.ForeignKey.DBName
		r.remoteKey = ref.PrimaryKey.DBName
	case ManyToMany:
		if rel.JoinTable == nil || rel.JoinTable.Table != r.JoinTable {
			return fail("join table %q does not match the schema", r.JoinTable)
		}
		own, other := ownReference(rel, true), ownReference(rel, false)
		if own == nil || own.ForeignKey.DBName != r.ForeignKey {
			return fail("join foreign key %q does not match the schema", r.ForeignKey)
		}
		if other == nil || other.ForeignKey.DBName != r.JoinForeignKey {
			return fail("join reference %q does not match the schema", r.JoinForeignKey)
		}
		r.localKey = own.PrimaryKey.DBName
		r.remoteKey = other.PrimaryKey.DBName
		r.joinLocal = own.ForeignKey.DBName
		r.joinRemote = other.ForeignKey.DBName
	}
	return nil
}

func ownReference(rel *schema.Relationship, own bool) *schema.Reference {
	for _, ref := range rel.References {
		if ref.OwnPrimaryKey == own && ref.PrimaryValue == "" {
			return ref
		}
	}
	return nil
}

// Relation looks up a registered relation by source entity and alias.
func (reg *Registry) Relation(source, alias string) (*Relation, bool) {
	e, ok := reg.entities[source]
	if !ok {
		return nil, false
	}
	r, ok := e.relations[alias]
	return r, ok
}

// Aliases lists the registered aliases of an entity in sorted order.
func (reg *Registry) Aliases(source string) []string {
	e, ok := reg.entities[source]
	if !ok {
		return nil
	}
	aliases := make([]string, 0, len(e.relations))
	for alias := range e.relations {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func (reg *Registry) entity(name string) (*entity, error) {
	e, ok := reg.entities[name]
	if !ok {
		return nil, queryErrorf("unknown entity %q", name)
	}
	return e, nil
}

func (e *entity) column(name string) (*schema.Field, bool) {
	f, ok := e.schema.FieldsByDBName[name]
	return f, ok
}
