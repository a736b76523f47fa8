// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package csr

import "golang.org/x/sys/cpu"

func init() {
	currentLevel = LevelScalar
	if cpu.ARM64.HasASIMD {
		currentLevel = LevelNEON
	}
}
