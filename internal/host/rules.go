package host

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/gendriver/internal/fsutil"
	"github.com/vk/gendriver/internal/registry"
)

// ruleState is the evaluation of one rule against a project root.
type ruleState struct {
	// inputs and outputs are root-relative, in lexical order.
	inputs  []string
	outputs []string
	// newest is the most recently modified input.
	newest string
	stale  bool
}

// evaluateRule matches rule against root. A rule without any matching input
// does not apply and is never stale. Otherwise it is stale when it has no
// output yet, or when an input is newer than the oldest output.
func evaluateRule(root string, rule *registry.Rule, skip func(rel string) bool) (ruleState, error) {
	var st ruleState
	for _, glob := range rule.Inputs {
		names, err := fsutil.MatchDir(root, glob)
		if err != nil {
			return st, fmt.Errorf("rule %s: input %q: %w", rule.Name, glob, err)
		}
		st.inputs = append(st.inputs, names...)
	}
	if len(st.inputs) == 0 {
		return st, nil
	}

	outputs, err := rule.Target.Match(root, skip)
	if err != nil {
		return st, fmt.Errorf("rule %s: target: %w", rule.Name, err)
	}
	st.outputs = outputs

	var newestIn time.Time
	for _, in := range st.inputs {
		mod, err := modTime(root, in)
		if err != nil {
			return st, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		if st.newest == "" || mod.After(newestIn) {
			st.newest, newestIn = in, mod
		}
	}

	if len(st.outputs) == 0 {
		st.stale = true
		return st, nil
	}

	var oldestOut time.Time
	for i, out := range st.outputs {
		mod, err := modTime(root, out)
		if err != nil {
			return st, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		if i == 0 || mod.Before(oldestOut) {
			oldestOut = mod
		}
	}
	st.stale = newestIn.After(oldestOut)
	return st, nil
}

func modTime(root, rel string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(root, rel))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
