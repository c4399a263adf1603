package main

import (
	"flag"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// loadConfigFile sets the flags in fs from the values in the config file at path, if path is
// not empty. Keys are the flag names. Flags set explicitly in the command line are not changed.
func loadConfigFile(fs *flag.FlagSet, path string) error {
	if path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %q", path)
	}

	explicit := generics.MakeSet[string]()
	fs.Visit(func(f *flag.Flag) { explicit.Insert(f.Name) })
	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || explicit.Has(f.Name) || !v.IsSet(f.Name) {
			return
		}
		if setErr := fs.Set(f.Name, v.GetString(f.Name)); setErr != nil {
			err = errors.Wrapf(setErr, "invalid value for %q in config file %q", f.Name, path)
		}
	})
	return err
}
