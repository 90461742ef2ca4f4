package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds each config key to the named flag. viper only reports a
// flag as set once the user changes it, so defaults never mask the file.
func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) error {
	for key, name := range keys {
		flag := lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}
