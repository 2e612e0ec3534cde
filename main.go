package main

import (
	"github.com/permadao/arseed-go/cmd"
)

func main() {
	cmd.Execute()
}
