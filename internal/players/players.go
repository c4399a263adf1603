// Package players provides a factory of AI players from configuration strings.
// It also allows player providers to register themselves.
package players

import (
	"slices"
	"strings"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/parameters"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the cell chosen for mark on the given board, and the evaluation
	// of the board after the move (positive favors MarkX), if the player has one.
	Play(board Board, mark Mark) (cell, score int, err error)

	// NewGame is called at the start of each match after the first. Players that keep
	// state across moves (e.g. a cache of evaluations) reset it.
	NewGame()

	// String describes the player, used in logs and in the UI.
	String() string
}

// Module creates players from the parameters of the configuration string.
//
// NewPlayer must remove from params the parameters it used: parameters left over are
// reported as an error.
type Module interface {
	NewPlayer(params parameters.Params) (Player, error)
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(params parameters.Params) (Player, error)

// NewPlayer implements Module.
func (fn ModuleFunc) NewPlayer(params parameters.Params) (Player, error) {
	return fn(params)
}

var (
	// Registered external modules.
	keywordToModules = make(map[string]Module)
)

// RegisterModule so it can be used by any of the front-ends to play.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = module
}

// RegisteredModules returns the sorted names of the modules registered.
func RegisteredModules() []string {
	return slices.Collect(generics.SortedKeys(keywordToModules))
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "minimax"
)

// New creates a new AI player given the configuration string.
//
// Args:
//
//	config: the module name optionally followed by a colon (":"), followed by a comma-separated list of
//		parameters with optional values associated, e.g. "minimax:max_depth=2,randomness=0.5".
//		If empty, the default is given by DefaultPlayerConfig.
//
// More details on the config are dependent on the module used.
func New(config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}

	// Find moduleName.
	moduleName, config, _ := strings.Cut(config, ":")
	moduleName = strings.TrimSpace(moduleName)
	module, ok := keywordToModules[moduleName]
	if !ok {
		if len(keywordToModules) == 0 {
			return nil, errors.Errorf("unknown AI player %q, no modules registered: perhaps you need to "+
				"import _ \"github.com/janpfeifer/tttGo/internal/players/default\" to your binary ?", moduleName)
		}
		return nil, errors.Errorf("unknown AI player %q, valid values are %q", moduleName, RegisteredModules())
	}

	params := parameters.NewFromConfigString(config)
	player, err := module.NewPlayer(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", moduleName)
	}

	// Check that all parameters were processed.
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "AI player %q", moduleName)
	}
	return player, nil
}
