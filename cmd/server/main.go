package main

import (
	"fmt"
	"os"

	"github.com/whisperwall/whisperwall/server"
)

func main() {
	s, err := server.New(server.NewConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := s.Guide(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
