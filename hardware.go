// hardware.go: one-time, process-wide CPU feature detection.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// hasHardwareCRC32 caches whether the process's CPU advertises an
// accelerated CRC32 instruction (SSE4.2 on amd64, the CRC32 extension on
// arm64). Detected once, at the first Create call in the process, per
// spec.md §6 ("self-detects CPU features ... caching the result in
// process-wide state").
var (
	hardwareOnce     sync.Once
	hasHardwareCRC32 bool
)

func detectHardwareCRC32() {
	hardwareOnce.Do(func() {
		hasHardwareCRC32 = cpuid.CPU.Supports(cpuid.SSE42) || cpuid.CPU.Supports(cpuid.CRC32)
	})
}

// supportsHardwareCRC32 reports the cached detection result, running
// detection on first use if no Cache has triggered it yet.
func supportsHardwareCRC32() bool {
	detectHardwareCRC32()
	return hasHardwareCRC32
}
