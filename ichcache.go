// ichcache.go: package-wide constants and version marker.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

const (
	// Version of the ichcache library.
	Version = "v0.1.0-dev"

	// DefaultMinCapacity is the floor applied to Config.MinCapacity.
	DefaultMinCapacity = 16

	// DefaultMaxLoadFactor is the default ratio of live items to slots.
	DefaultMaxLoadFactor = 0.40

	// ageEmpty marks a slot that has never been used, or was fully cleared.
	ageEmpty uint8 = 0

	// ageTombstone marks a slot whose item was removed. Probing continues
	// past it; inserts may reclaim it.
	ageTombstone uint8 = 1

	// ageInitial is the age assigned to a slot on first insert.
	ageInitial uint8 = 2

	// ageMax is the hottest a slot's age can reach.
	ageMax uint8 = 7

	// maxEvictionSearch bounds the number of ALIVE slots visited per
	// eviction sweep, so a single Put that triggers eviction does O(1) work.
	maxEvictionSearch = 16
)
