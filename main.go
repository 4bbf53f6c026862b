package main

import "github.com/printsweep/printsweep/cmd/printsweep"

func main() { printsweep.Execute() }
