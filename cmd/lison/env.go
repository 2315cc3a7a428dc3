package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "lison"

// applyEnvironment fills the flags left unset on the command line from
// LISON_<COMMAND>_<FLAG>, then from LISON_<FLAG>. Dashes in flag names become
// underscores.
func applyEnvironment(cmd *cobra.Command) error {
	prefixes := []string{envPrefix}
	if cmd.Name() != envPrefix {
		prefixes = []string{envPrefix + "_" + cmd.Name(), envPrefix}
	}

	var errs []string
	for _, prefix := range prefixes {
		v := viper.New()
		v.SetEnvPrefix(prefix)
		v.AutomaticEnv()

		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if f.Changed || !v.IsSet(key) {
				return
			}

			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
				errs = append(errs, err.Error())
			}
		})
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(errs, "; "))
}
