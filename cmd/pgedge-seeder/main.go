//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package main is the entry point for pgedge-seeder.
package main

import (
	"os"

	"github.com/pgEdge/pgedge-seeder/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout))
}
