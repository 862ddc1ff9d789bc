package resource

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyName  = errors.New("resource name cannot be empty")
	ErrSelfParent = errors.New("resource cannot be its own parent")
)

// Resource is a lockable unit. The hierarchy is exactly two levels deep:
// a top-level resource (parentID nil) and its sub-resources. Resources are
// created and deleted by external CRUD; the engine only reads id + parent link.
type Resource struct {
	id       uuid.UUID
	name     string
	parentID *uuid.UUID
}

func NewResource(id uuid.UUID, name string, parentID *uuid.UUID) (*Resource, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if parentID != nil && *parentID == id {
		return nil, ErrSelfParent
	}
	return &Resource{
		id:       id,
		name:     name,
		parentID: parentID,
	}, nil
}

// ReconstructResource rebuilds an entity from a stored row, skipping the
// creation-time validation.
func ReconstructResource(id uuid.UUID, name string, parentID *uuid.UUID) *Resource {
	return &Resource{
		id:       id,
		name:     name,
		parentID: parentID,
	}
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) ParentID() *uuid.UUID { return r.parentID }

func (r *Resource) IsTopLevel() bool {
	return r.parentID == nil
}

// SerializationRoot is the id every mutation on this resource must serialize
// on: the parent for a sub-resource, the resource itself otherwise. Locking a
// single row per hierarchy gives the per-resource serialization point without
// deadlock-prone multi-row lock ordering.
func (r *Resource) SerializationRoot() uuid.UUID {
	if r.parentID != nil {
		return *r.parentID
	}
	return r.id
}
