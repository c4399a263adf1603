// Package _default registers the default players that can be included in any
// front-end for tttGo.
//
// Currently, it includes "minimax" (alpha-beta search with a static evaluation) and
// "random".
package _default

import (
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/players"
)

func init() {
	players.RegisterModule("minimax", players.ModuleFunc(func(params parameters.Params) (players.Player, error) {
		return players.NewSearcherPlayer(params)
	}))
	players.RegisterModule("random", players.ModuleFunc(func(params parameters.Params) (players.Player, error) {
		return players.NewRandomPlayer(params)
	}))
}
