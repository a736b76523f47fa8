// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package csr

func init() {
	currentLevel = LevelScalar
}
