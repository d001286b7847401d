// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command ceddbench solves classical BDD problems (n-queens, Milner's
// scheduler...) and reports on the resources used by the library.
package main

import "github.com/dalzilio/cedd/cmd/ceddbench/cmd"

func main() {
	cmd.Execute()
}
