package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleTypeName        = "bool"
	toggleImplicitValue   = "true"
	toggleAcceptedValues  = "true, false, yes, no, on, off, 1, 0"
	errorToggleValue      = "invalid boolean value %q for --%s; accepted values: %s"
	flagPrefix            = "--"
	flagValueSeparator    = "="
	argumentsTerminator   = "--"
	shorthandFlagPrefix   = "-"
	joinedToggleArgFormat = "--%s=%s"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseToggle maps a literal such as "no" or "ON" to its boolean value. An
// empty literal means the bare flag was given.
func parseToggle(literal string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(literal))
	if normalized == "" {
		return true, true
	}
	value, known := toggleLiterals[normalized]
	return value, known
}

// toggleValue backs --skip-unreadable, --stats, --copy and the init flags so
// that "--stats no" and "--copy=off" work alongside the bare flag.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	parsed, known := parseToggle(input)
	if !known {
		return fmt.Errorf(errorToggleValue, input, value.name, toggleAcceptedValues)
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

// registerBooleanFlag binds target to a toggle flag named name.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleValue{target: target, name: name}, name, usage)
	flag := flagSet.Lookup(name)
	flag.DefValue = strconv.FormatBool(defaultValue)
	flag.NoOptDefVal = toggleImplicitValue
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" when
// flag is a toggle anywhere in the command tree and value is a boolean
// literal, since pflag only binds optional values written with "=".
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	toggles := toggleFlagNames(command)
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentsTerminator {
			return append(normalized, arguments[index:]...)
		}
		name := strings.TrimPrefix(argument, flagPrefix)
		_, isToggle := toggles[name]
		joinable := isToggle && name != argument && !strings.Contains(argument, flagValueSeparator) && index+1 < len(arguments)
		if joinable {
			next := arguments[index+1]
			if _, known := parseToggle(next); known && next != "" && !strings.HasPrefix(next, shorthandFlagPrefix) {
				normalized = append(normalized, fmt.Sprintf(joinedToggleArgFormat, name, next))
				index++
				continue
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

// toggleFlagNames collects the toggle flags of command and its subcommands.
func toggleFlagNames(command *cobra.Command) map[string]struct{} {
	names := map[string]struct{}{}
	var visitCommand func(*cobra.Command)
	visitCommand = func(current *cobra.Command) {
		for _, flagSet := range []*pflag.FlagSet{current.PersistentFlags(), current.Flags()} {
			flagSet.VisitAll(func(flag *pflag.Flag) {
				if _, isToggle := flag.Value.(*toggleValue); isToggle {
					names[flag.Name] = struct{}{}
				}
			})
		}
		for _, child := range current.Commands() {
			visitCommand(child)
		}
	}
	if command != nil {
		visitCommand(command)
	}
	return names
}
