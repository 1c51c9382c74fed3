package main

import "github.com/oshokin/sumo-robot/cmd/sumo/cmd"

func main() {
	cmd.Execute()
}
