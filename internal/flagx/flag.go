// Package flagx lets independent config stages each pick their own flags out
// of os.Args without tripping over flags owned by another stage.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised. A token that
// starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := known[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// stringFlag returns the value of the first matching alias found in
// os.Args, or "" when none is present.
func stringFlag(set string, aliases ...string) string {
	var value string

	dashed := make([]string, 0, len(aliases))
	for _, a := range aliases {
		dashed = append(dashed, "-"+a)
	}

	fs := flag.NewFlagSet(set, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, a := range aliases {
		fs.StringVar(&value, a, "", "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], dashed))

	return value
}

// JsonConfigFlags returns the path passed with -c or -config.
func JsonConfigFlags() string {
	return stringFlag("json", "c", "config")
}

// EnvFileFlag returns the path passed with -env, the dotenv file to load
// before reading BROKERDESK_* variables.
func EnvFileFlag() string {
	return stringFlag("env", "env")
}
