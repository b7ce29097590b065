package project

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
)

const compilerOptionsTable = "compiler-options"

// ErrUnsupportedOption reports a [compiler-options] value that has no
// command-line form.
var ErrUnsupportedOption = errors.New("unsupported compiler option value")

// compilerOptionArgs turns the [compiler-options] table into command-line
// flags. Keys keep the order they were written in, which MetaData.Keys
// preserves and a Go map would not.
func compilerOptionArgs(meta toml.MetaData, values map[string]any) ([]string, error) {
	args := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != compilerOptionsTable {
			continue
		}
		name := key[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		value, ok := values[name]
		if !ok {
			continue
		}
		flags, err := optionFlags(name, value)
		if err != nil {
			return nil, err
		}
		args = append(args, flags...)
	}
	return args, nil
}

func optionFlags(name string, value any) ([]string, error) {
	switch v := value.(type) {
	case bool:
		return []string{"-" + name + "=" + strconv.FormatBool(v)}, nil
	case string:
		return []string{"-" + name + "=" + v}, nil
	case int64:
		return []string{"-" + name + "=" + strconv.FormatInt(v, 10)}, nil
	case float64:
		return []string{"-" + name + "=" + strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return listFlags(name, items)
	case []any:
		return listFlags(name, v)
	}
	return nil, fmt.Errorf("%w: %s.%s has type %T", ErrUnsupportedOption, compilerOptionsTable, name, value)
}

func listFlags(name string, items []any) ([]string, error) {
	if len(items) == 0 {
		// an empty list clears whatever a config file set
		return []string{"-" + name + "="}, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, "-"+name+"+="+v)
		case map[string]any:
			pair, err := pairValue(name, v)
			if err != nil {
				return nil, err
			}
			out = append(out, "-"+name+"+="+pair)
		default:
			return nil, fmt.Errorf("%w: %s.%s element has type %T", ErrUnsupportedOption, compilerOptionsTable, name, item)
		}
	}
	return out, nil
}

// pairValue handles {name = "...", value = ...} entries such as define.
func pairValue(option string, entry map[string]any) (string, error) {
	rawName, ok := entry["name"].(string)
	if !ok || rawName == "" {
		return "", fmt.Errorf("%w: %s.%s entry needs a name", ErrUnsupportedOption, compilerOptionsTable, option)
	}
	rawValue, ok := entry["value"]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s entry %q needs a value", ErrUnsupportedOption, compilerOptionsTable, option, rawName)
	}
	var value string
	switch v := rawValue.(type) {
	case string:
		value = v
	case bool:
		value = strconv.FormatBool(v)
	case int64:
		value = strconv.FormatInt(v, 10)
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "", fmt.Errorf("%w: %s.%s entry %q has value type %T", ErrUnsupportedOption, compilerOptionsTable, option, rawName, rawValue)
	}
	return rawName + "," + value, nil
}
