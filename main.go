package main

import (
	// Time zone database for configured locations on systems without one
	_ "time/tzdata"

	"github.com/expense-tracer/backend/cmd"
)

func main() {
	cmd.Execute()
}
