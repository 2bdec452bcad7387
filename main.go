package main

import "github.com/searchfluent/elastic-data-api/cmd"

func main() {
	cmd.Execute()
}
