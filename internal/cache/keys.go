// Package cache implements C3: a content-addressed, namespaced result
// cache backed by an external byte-addressable key-value store, with
// bulk invalidation whenever the upstream data-version changes.
package cache

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/cquiroz/lucuma-itc/internal/bridge"
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// Namespace distinguishes result shapes so a decoder never has to guess
// which schema produced a given value.
type Namespace string

const (
	NamespaceSpecGraph Namespace = "spec-graph"
	NamespaceSpecTime  Namespace = "spec-time"
	NamespaceImgTime   Namespace = "img-time"
)

// versionKey is the fixed key name reserved for the upstream data-version
// string. Cache does not read or write it; it keeps the last seen version
// in memory instead.
const versionKey = "version"

// RequestKey derives the stable cache key for req within ns. The request
// is normalised by rendering it through bridge.EncodeRequest — the same
// canonical, deterministic text document the legacy calculator itself
// consumes — then hashed with a 64-bit, non-cryptographic hash (xxhash;
// the key only needs stability, not cryptographic strength). Equal
// requests always produce equal canonical documents and therefore equal
// keys.
func RequestKey(ns Namespace, req *itctypes.CalculationRequest) []byte {
	doc := bridge.EncodeRequest(req)
	sum := xxhash.Sum64String(doc)
	return []byte(fmt.Sprintf("%s:%s", ns, hex.EncodeToString(encodeUint64(sum))))
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}
