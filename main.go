package main

import "github.com/fieldcdr/weathering/cmd"

func main() {
	cmd.Execute()
}
