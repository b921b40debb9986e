package statusutil

import (
	"fmt"
	"strconv"
	"strings"

	"jira-cli/internal/model"
)

// ParseSelection turns a status picker answer into a Status. It accepts the
// 1-based menu position ("1".."4") or any form ParseStatus understands.
func ParseSelection(s string) (model.Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid status: empty")
	}
	if n, err := strconv.Atoi(s); err == nil {
		all := model.AllStatuses()
		if n < 1 || n > len(all) {
			return 0, fmt.Errorf("invalid status selection: %d (want 1-%d)", n, len(all))
		}
		return all[n-1], nil
	}
	return model.ParseStatus(s)
}

// MenuLines renders the picker options as "1: OPEN" etc.
func MenuLines() []string {
	all := model.AllStatuses()
	out := make([]string, 0, len(all))
	for i, st := range all {
		out = append(out, fmt.Sprintf("%d: %s", i+1, st))
	}
	return out
}

// IsEndState reports whether no further work is expected.
func IsEndState(s model.Status) bool {
	return s == model.StatusResolved || s == model.StatusClosed
}
