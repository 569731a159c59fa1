// Package flagx lets several independent components parse their own subset
// of the command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments in args that belong to one of the
// value-taking flags in allowedFlags, together with their values.
//
// Both "-f value" and "-f=value" forms are understood, and "--f" is treated
// the same as "-f". Everything else is dropped.
func FilterArgs(args []string, allowedFlags []string) []string {
	return Filter(args, allowedFlags, nil)
}

// Filter is FilterArgs with an extra list of boolean flags. A boolean flag
// never consumes the following argument as its value.
func Filter(args []string, valueFlags, boolFlags []string) []string {
	values := nameSet(valueFlags)
	bools := nameSet(boolFlags)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		name = normalize(name)

		if _, ok := bools[name]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := values[name]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile extracts the JSON config file path given with -c or -config.
// It returns an empty string when neither is present. The last occurrence wins.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

func nameSet(flags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		set[normalize(f)] = struct{}{}
	}
	return set
}

func normalize(name string) string {
	return strings.TrimLeft(name, "-")
}
