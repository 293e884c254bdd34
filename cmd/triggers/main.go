/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	_ "embed"
	"os"

	"github.com/untillpro/goutils/cobrau"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"triggers",
		"Bulk record-change dispatcher",
		args,
		ver,
		newDemoCmd(),
		newRunCmd(),
	)
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}
