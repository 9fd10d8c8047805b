package cms

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"episolve/apperr"
	"episolve/models"
)

// Store implements Client on top of gorm. Each collection is backed by
// its own model and table.
type Store struct {
	db          *gorm.DB
	collections map[string]*collection
}

type collection struct {
	name      string
	typ       reflect.Type
	fields    map[string]string
	writeOnce []string
}

var _ Client = (*Store)(nil)

// NewStore registers every collection in registry, keyed by name, whose
// values are pointers to the backing models.
func NewStore(db *gorm.DB, registry map[string]any) (*Store, error) {
	s := &Store{db: db, collections: make(map[string]*collection, len(registry))}
	cache := &sync.Map{}

	for name, model := range registry {
		sch, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parsing %s model: %w", name, err)
		}

		c := &collection{
			name:   name,
			typ:    reflect.TypeOf(model).Elem(),
			fields: make(map[string]string, len(sch.Fields)),
		}
		for _, f := range sch.Fields {
			if f.DBName == "" {
				continue
			}
			key := strings.Split(f.Tag.Get("json"), ",")[0]
			if key == "" || key == "-" {
				key = f.Name
			}
			c.fields[key] = f.DBName
		}
		if w, ok := model.(interface{ WriteOnce() []string }); ok {
			c.writeOnce = w.WriteOnce()
		}
		s.collections[name] = c
	}
	return s, nil
}

func (s *Store) collection(name string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, apperr.Invalid("unknown collection %q", name)
	}
	return c, nil
}

func (c *collection) newModel() any {
	return reflect.New(c.typ).Interface()
}

func (c *collection) column(field string) (string, error) {
	col, ok := c.fields[field]
	if !ok {
		return "", apperr.Invalid("collection %s has no field %q", c.name, field)
	}
	return col, nil
}

func (s *Store) scope(ctx context.Context, c *collection, q Query) (*gorm.DB, error) {
	tx := s.db.WithContext(ctx).Model(c.newModel())

	for _, cond := range q.Where {
		col, err := c.column(cond.Field)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: col}, Value: cond.Equals})
	}

	if len(q.Any) > 0 {
		exprs := make([]clause.Expression, 0, len(q.Any))
		for _, cond := range q.Any {
			col, err := c.column(cond.Field)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: col}, Value: cond.Equals})
		}
		tx = tx.Where(clause.Or(exprs...))
	}
	return tx, nil
}

func (s *Store) ordered(tx *gorm.DB, c *collection, q Query) (*gorm.DB, error) {
	if q.Sort != "" {
		field, desc := strings.TrimPrefix(q.Sort, "-"), strings.HasPrefix(q.Sort, "-")
		col, err := c.column(field)
		if err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

func (s *Store) Count(ctx context.Context, name string, q Query) (int64, error) {
	c, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	tx, err := s.scope(ctx, c, q)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, apperr.Store(err, "counting "+name)
	}
	return total, nil
}

func (s *Store) Find(ctx context.Context, name string, q Query) (*Result, error) {
	total, err := s.Count(ctx, name, q)
	if err != nil {
		return nil, err
	}

	c, _ := s.collection(name)
	tx, err := s.scope(ctx, c, q)
	if err != nil {
		return nil, err
	}
	if tx, err = s.ordered(tx, c, q); err != nil {
		return nil, err
	}

	rows := reflect.New(reflect.SliceOf(reflect.PointerTo(c.typ)))
	if err := tx.Find(rows.Interface()).Error; err != nil {
		return nil, apperr.Store(err, "finding "+name)
	}

	slice := rows.Elem()
	result := &Result{Docs: make([]Document, 0, slice.Len()), TotalDocs: total}
	for i := 0; i < slice.Len(); i++ {
		doc, err := ToDocument(slice.Index(i).Interface())
		if err != nil {
			return nil, apperr.Store(err, "encoding "+name)
		}
		result.Docs = append(result.Docs, doc)
	}
	return result, nil
}

// Iter streams matching records one row at a time. The sequence can be
// ranged over once.
func (s *Store) Iter(ctx context.Context, name string, q Query) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		c, err := s.collection(name)
		if err != nil {
			yield(nil, err)
			return
		}
		tx, err := s.scope(ctx, c, q)
		if err == nil {
			tx, err = s.ordered(tx, c, q)
		}
		if err != nil {
			yield(nil, err)
			return
		}

		rows, err := tx.Rows()
		if err != nil {
			yield(nil, apperr.Store(err, "listing "+name))
			return
		}
		defer rows.Close()

		for rows.Next() {
			m := c.newModel()
			if err := s.db.ScanRows(rows, m); err != nil {
				yield(nil, apperr.Store(err, "scanning "+name))
				return
			}
			doc, err := ToDocument(m)
			if err != nil {
				yield(nil, apperr.Store(err, "encoding "+name))
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, apperr.Store(err, "listing "+name))
		}
	}
}

func (s *Store) load(ctx context.Context, c *collection, id string) (any, error) {
	key, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, apperr.NotFound("%s %q not found", c.name, id)
	}

	m := c.newModel()
	if err := s.db.WithContext(ctx).First(m, key).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("%s %q", c.name, id))
	}
	return m, nil
}

func (s *Store) FindByID(ctx context.Context, name, id string) (Document, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	m, err := s.load(ctx, c, id)
	if err != nil {
		return nil, err
	}
	return ToDocument(m)
}

func (s *Store) Create(ctx context.Context, name string, data Document) (Document, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if err := c.checkFields(data); err != nil {
		return nil, err
	}

	fields := make(Document, len(data))
	for k, v := range data {
		switch k {
		case "id", "createdAt", "updatedAt":
			continue
		}
		fields[k] = v
	}

	m := c.newModel()
	if err := Decode(fields, m); err != nil {
		return nil, apperr.WrapInvalid(err, "decoding "+name)
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, "creating "+name)
	}
	return ToDocument(m)
}

func (s *Store) Update(ctx context.Context, name, id string, data Document) (Document, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if err := c.checkFields(data); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, c, id)
	if err != nil {
		return nil, err
	}
	current, err := ToDocument(m)
	if err != nil {
		return nil, apperr.Store(err, "encoding "+name)
	}

	for _, field := range c.writeOnce {
		next, ok := data[field]
		if ok && current.String(field) != "" && fmt.Sprint(next) != current.String(field) {
			return nil, apperr.Invalid("%s.%s is write-once", name, field)
		}
	}

	for k, v := range data {
		switch k {
		case "id", "createdAt", "updatedAt":
			continue
		}
		current[k] = v
	}

	next := c.newModel()
	if err := Decode(current, next); err != nil {
		return nil, apperr.WrapInvalid(err, "decoding "+name)
	}
	if err := validate(next); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(next).Error; err != nil {
		return nil, translate(err, "updating "+name)
	}
	return ToDocument(next)
}

func (s *Store) Delete(ctx context.Context, name, id string) error {
	c, err := s.collection(name)
	if err != nil {
		return err
	}
	m, err := s.load(ctx, c, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(m).Error; err != nil {
		return translate(err, "deleting "+name)
	}
	return nil
}

func (s *Store) FindGlobal(ctx context.Context, slug string) (Document, error) {
	var g models.Global
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translate(err, "global "+slug)
	}
	if g.Data == nil {
		return Document{}, nil
	}
	return Document(g.Data), nil
}

// UpdateGlobal creates the global on first write, otherwise merges data
// into it at the top level.
func (s *Store) UpdateGlobal(ctx context.Context, slug string, data Document) (Document, error) {
	var g models.Global
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		g = models.Global{Slug: slug, Data: map[string]any{}}
	case err != nil:
		return nil, translate(err, "global "+slug)
	}
	if g.Data == nil {
		g.Data = map[string]any{}
	}
	for k, v := range data {
		g.Data[k] = v
	}

	if err := s.db.WithContext(ctx).Save(&g).Error; err != nil {
		return nil, translate(err, "updating global "+slug)
	}
	return ToDocument(g.Data)
}

func (c *collection) checkFields(data Document) error {
	for k := range data {
		if _, ok := c.fields[k]; !ok {
			return apperr.Invalid("collection %s has no field %q", c.name, k)
		}
	}
	return nil
}

func validate(m any) error {
	if v, ok := m.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "constraint failed"):
		return apperr.WrapInvalid(err, what+": constraint violated")
	}
	return apperr.Store(err, what)
}
