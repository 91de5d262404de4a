// Package main is the entry point for the league CLI, which replays a doubles
// league's match log into player ratings, pair ratings, stats and records.
package main

import "github.com/pable/doubles-league/cmd"

func main() {
	cmd.Execute()
}
