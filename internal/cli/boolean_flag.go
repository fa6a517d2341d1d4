package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleTypeName       = "bool"
	toggleBareValue      = "true"
	toggleAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	errorToggleFormat    = "invalid value %q for --%s; accepted values: %s"
	longFlagPrefix       = "--"
	shortFlagPrefix      = "-"
)

// toggleLiterals are the values rptree's boolean flags accept, in any letter case.
var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
}

func parseToggle(input string) (bool, bool) {
	value, known := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return value, known
}

// toggleValue backs flags such as --dir-only and --copy. A bare flag means true.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = toggleBareValue
	}
	parsed, known := parseToggle(input)
	if !known {
		return fmt.Errorf(errorToggleFormat, input, value.name, toggleAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return toggleTypeName
}

// registerBooleanFlag adds a toggle flag named name with an optional one-letter shorthand.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.VarP(&toggleValue{target: target, name: name}, name, shorthand, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleBareValue
}

// normalizeBooleanFlagArguments joins a toggle flag and a following literal into
// one argument, so "-d yes" and "--dir-only no" are not read as ROOT_DIR.
// Everything after "--" is left untouched.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	spellings := toggleSpellings(command)
	if len(spellings) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefix {
			return append(normalized, arguments[index:]...)
		}
		longName, isToggle := spellings[current]
		if isToggle && index+1 < len(arguments) {
			if _, known := parseToggle(arguments[index+1]); known {
				normalized = append(normalized, longFlagPrefix+longName+"="+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, current)
	}
	return normalized
}

// toggleSpellings maps "--name" and "-x" of every toggle flag in the command
// tree to the long flag name.
func toggleSpellings(command *cobra.Command) map[string]string {
	spellings := map[string]string{}
	var visit func(*cobra.Command)
	visit = func(current *cobra.Command) {
		collect := func(flag *pflag.Flag) {
			if _, isToggle := flag.Value.(*toggleValue); !isToggle {
				return
			}
			spellings[longFlagPrefix+flag.Name] = flag.Name
			if flag.Shorthand != "" {
				spellings[shortFlagPrefix+flag.Shorthand] = flag.Name
			}
		}
		current.PersistentFlags().VisitAll(collect)
		current.Flags().VisitAll(collect)
		for _, child := range current.Commands() {
			visit(child)
		}
	}
	if command != nil {
		visit(command)
	}
	return spellings
}
