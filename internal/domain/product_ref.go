package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductRef identifies the product an order is for. It is either a
// PersistedProduct or a FallbackProduct.
type ProductRef interface {
	String() string
	isProductRef()
}

// PersistedProduct keeps the reference as the caller wrote it in Raw, since
// Hex() always renders lower case.
type PersistedProduct struct {
	ID  primitive.ObjectID
	Raw string
}

type FallbackProduct struct {
	Key string
}

func (p PersistedProduct) String() string {
	if p.Raw != "" {
		return p.Raw
	}
	return p.ID.Hex()
}

func (f FallbackProduct) String() string { return f.Key }

func (PersistedProduct) isProductRef() {}
func (FallbackProduct) isProductRef()  {}

// ParseProductRef classifies a raw reference once. Anything that is a valid
// 24-hex object id is a PersistedProduct; the rest are fallback keys.
func ParseProductRef(raw string) ProductRef {
	if id, err := primitive.ObjectIDFromHex(raw); err == nil {
		return PersistedProduct{ID: id, Raw: raw}
	}
	return FallbackProduct{Key: raw}
}

// NewID returns a fresh record id in the same shape ParseProductRef
// recognises as persisted.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
