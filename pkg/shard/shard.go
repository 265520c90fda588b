// Package shard names the per-owner partitions every owner-scoped record set
// lives in. A shard key is "<kind>_<owner>", for example "cart_u1" or
// "orders_guest"; global record sets (catalog, directory) use a fixed key.
package shard

import (
	"strings"
)

// Owner identifies a partition: a user id, or Guest when nobody is signed in.
type Owner string

// Guest is the shared partition used for unauthenticated callers.
const Guest Owner = "guest"

// Kind is the record family stored in a shard.
type Kind string

const (
	KindAddresses Kind = "addresses"
	KindCart      Kind = "cart"
	KindCoupons   Kind = "coupons"
	KindOrders    Kind = "orders"
	KindPoints    Kind = "points"
)

// Global keys.
const (
	ProductsKey = "products"
	UsersKey    = "registered_users"
)

const separator = "_"

// OwnerOf maps an authenticated user id to its partition. An empty id is the
// guest partition.
func OwnerOf(userID string) Owner {
	id := strings.TrimSpace(userID)
	if id == "" {
		return Guest
	}
	return Owner(id)
}

// IsGuest reports whether o is the shared guest partition.
func (o Owner) IsGuest() bool {
	return o == "" || o == Guest
}

func (o Owner) String() string {
	if o == "" {
		return string(Guest)
	}
	return string(o)
}

// Key returns the storage key of owner's shard of the given kind.
func Key(kind Kind, owner Owner) string {
	return Prefix(kind) + owner.String()
}

// Prefix returns the key prefix shared by every shard of kind.
func Prefix(kind Kind) string {
	return string(kind) + separator
}

// OwnerFromKey recovers the owner encoded in a shard key of the given kind.
func OwnerFromKey(kind Kind, key string) (Owner, bool) {
	prefix := Prefix(kind)
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return Owner(key[len(prefix):]), true
}
