package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/aims/pkg/models/store"
	"github.com/de-tools/aims/pkg/store/sqlstore"
)

// collection maps records of type T onto documents of one kind.
type collection[T any] struct {
	store sqlstore.Store
	kind  store.Kind
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) get(ctx context.Context, id string) (T, error) {
	doc, err := c.store.Get(ctx, c.kind, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](doc)
}

func (c collection[T]) insert(ctx context.Context, id string, v T) error {
	doc, err := c.encode(id, v)
	if err != nil {
		return err
	}
	return c.store.Insert(ctx, doc)
}

func (c collection[T]) update(ctx context.Context, id string, v T) error {
	doc, err := c.encode(id, v)
	if err != nil {
		return err
	}
	return c.store.Update(ctx, doc)
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.kind, id)
}

func (c collection[T]) encode(id string, v T) (store.Document, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return store.Document{}, fmt.Errorf("failed to encode %s %s: %w", c.kind, id, err)
	}
	return store.Document{Kind: c.kind, ID: id, Body: body}, nil
}

func decode[T any](doc store.Document) (T, error) {
	var v T
	if err := json.Unmarshal(doc.Body, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s %s: %w", doc.Kind, doc.ID, err)
	}
	return v, nil
}
