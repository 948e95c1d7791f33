package main

import "github.com/dbsmedya/tdb/cmd/tdb/cmd"

func main() {
	cmd.Execute()
}
