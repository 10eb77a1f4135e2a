package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mlsweep/minedata/internal/game"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"r": 2,
	"f": 2,
	"u": 2,
	"c": 2,
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func executeCommand(g *game.Game, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	if parts[0] == "g" {
		return nil
	}
	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	if !g.Contains(row, col) {
		return errors.New("invalid square coordinates")
	}
	switch parts[0] {
	case "r":
		return g.Reveal(row, col)
	case "f":
		return g.Flag(row, col)
	case "u":
		return g.Unflag(row, col)
	case "c":
		return g.Chord(row, col)
	}
	return errors.New("invalid command")
}
