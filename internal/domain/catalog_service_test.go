package domain

import (
	"context"
	"errors"
	"testing"
)

func TestMediaTypeLifecycle(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	id, err := c.mediaTypes.Create(ctx, "Podcast")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := c.mediaTypes.Update(ctx, id, "Audio"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := c.mediaTypes.Get(ctx, id)
	if err != nil || got.Name != "Audio" {
		t.Fatalf("expected renamed media type, got %+v, %v", got, err)
	}

	if err := c.mediaTypes.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.mediaTypes.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMediaTypeMissing(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	if err := c.mediaTypes.Update(ctx, 7, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := c.mediaTypes.Delete(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestMediaTypeDuplicateNameIsStorageError(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	if _, err := c.mediaTypes.Create(ctx, "Book"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.mediaTypes.Create(ctx, "Book"); !errors.Is(err, ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}

func TestMediaTypeListEmpty(t *testing.T) {
	c := newCatalog(t)

	out, err := c.mediaTypes.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", out)
	}
}

func TestAuthorLifecycle(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	id, err := c.authors.Create(ctx, "Grace", "Hopper")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.authors.Update(ctx, id, "Grace", "Murray Hopper"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := c.authors.Get(ctx, id)
	if got.Surname != "Murray Hopper" {
		t.Errorf("expected updated surname, got %+v", got)
	}

	list, _ := c.authors.List(ctx)
	if len(list) != 1 {
		t.Errorf("expected one author, got %d", len(list))
	}

	if err := c.authors.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := c.authors.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthorDeleteDetachesFromContent(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	mt, a := c.seed(t)

	id, _ := c.contents.Create(ctx, contentInput("Notes", mt, a))
	if err := c.authors.Delete(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := c.contents.Get(ctx, id)
	if err != nil {
		t.Fatalf("content should survive author delete: %v", err)
	}
	if len(got.Authors) != 0 {
		t.Errorf("expected no authors left, got %+v", got.Authors)
	}
}
