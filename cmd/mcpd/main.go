package main

import (
	"log"
	"os"

	_ "github.com/viant/scy/kms/blowfish"

	"github.com/mcpdispatch/mcpd"
)

func main() {
	if err := mcpd.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
