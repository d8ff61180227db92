package main

import "github.com/NomadCrew/splitly-backend/cmd"

func main() {
	cmd.Execute()
}
