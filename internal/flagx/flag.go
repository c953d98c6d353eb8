// Package flagx lets several independent flag sets share os.Args: each
// parser first keeps only the arguments it owns.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Allowed lists the flags one parser owns. Names are given without dashes;
// both "-name" and "--name" spellings are accepted on the command line.
type Allowed struct {
	// Value flags consume the following argument unless it starts with '-'.
	Value []string
	// Bool flags never consume the following argument.
	Bool []string
}

// FilterArgs returns the arguments of args that belong to allowed flags,
// keeping their order. Supported forms:
//
//	-c conf.json
//	--config=conf.json
//	-v            (bool)
//	-v=false      (bool)
func FilterArgs(args []string, allowed Allowed) []string {
	kinds := make(map[string]bool, len(allowed.Value)+len(allowed.Bool))
	for _, f := range allowed.Value {
		kinds[f] = true
	}
	for _, f := range allowed.Bool {
		kinds[f] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		takesValue, ok := kinds[name]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag extracts the config file path given with -c or -config.
// An empty string means no file was requested; the last occurrence wins.
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Allowed{Value: []string{"c", "config"}}))

	return config
}
