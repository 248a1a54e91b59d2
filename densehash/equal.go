// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package densehash

import "reflect"

// valueEqual compares two values of the map's value type for Map.Equal. V
// is unconstrained (any), so comparison falls back to reflect.DeepEqual
// rather than requiring V to satisfy comparable — the same tradeoff the
// equality predicate of a heterogeneous container always makes when its
// value type isn't known to be comparable.
func valueEqual[V any](a, b V) bool {
	return reflect.DeepEqual(a, b)
}
