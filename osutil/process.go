package osutil

import (
	"context"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// RunningMatches returns the subset of tokens for which at least one running
// process name contains the token (case-insensitive). Used by the doctor
// command to show which discovered browsers are currently running.
func RunningMatches(ctx context.Context, tokens []string) []string {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}

	found := make(map[string]bool, len(tokens))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		lower := strings.ToLower(name)
		for _, token := range tokens {
			if token == "" || found[token] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(token)) {
				found[token] = true
			}
		}
	}

	matches := make([]string, 0, len(found))
	for token := range found {
		matches = append(matches, token)
	}
	sort.Strings(matches)
	return matches
}
