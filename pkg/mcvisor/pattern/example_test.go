package pattern_test

import (
	"fmt"
	"log"

	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/pattern"
)

// Example demonstrates extending the built-in templates with in-memory YAML.
func Example() {
	yamlData := []byte(`version: 1
patterns:
  - id: essentials_join
    kind: login
    regex: '^(\S+) has joined the server$'
`)

	pf, err := pattern.LoadBytes(yamlData)
	if err != nil {
		log.Fatal(err)
	}
	p, err := pattern.NewParser(pf)
	if err != nil {
		log.Fatal(err)
	}

	ev, err := p.Classify("[10:00:00] [Server thread/INFO]: Steve has joined the server")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ev.Kind, ev.Player)
	// Output: login Steve
}

// ExampleLoad demonstrates loading and inspecting a pattern file.
func ExampleLoad() {
	pf, err := pattern.Load("testdata/valid.yaml")
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range pf.Patterns {
		fmt.Printf("%s: %s\n", p.ID, p.Kind)
	}
	// Output:
	// essentials_join: login
	// essentials_quit: logout
	// bungee_chat: chat
	// laser_death: death
}
