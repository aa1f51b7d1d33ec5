package main

import (
	"github.com/dszqbsm/hoopstat/cmd"
)

func main() {
	cmd.Execute()
}
