// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package csr

import "golang.org/x/sys/cpu"

func init() {
	switch {
	case cpu.X86.HasAVX512F:
		currentLevel = LevelAVX512
	case cpu.X86.HasAVX2:
		currentLevel = LevelAVX2
	default:
		currentLevel = LevelScalar
	}
}
