package organize

import (
	"filenest/internal/config"
	"filenest/pkg/types"
)

// Match evaluates the profile's rules in list order against one file
// and returns the first enabled rule whose predicates all hold. When no
// listed rule matches, the profile's explicit catch-all (if enabled)
// takes the file. The second return is false only when the file matched
// nothing at all.
func Match(rec *types.FileRecord, profile *config.Profile) (*types.Rule, bool) {
	for i := range profile.Rules {
		rule := &profile.Rules[i]
		if !rule.Enabled {
			continue
		}
		if ruleMatches(rule, rec) {
			return rule, true
		}
	}
	if profile.CatchAll != nil && profile.CatchAll.Enabled {
		return profile.CatchAll, true
	}
	return nil, false
}

// ruleMatches checks every specified predicate; unset predicates do not
// constrain the match.
func ruleMatches(rule *types.Rule, rec *types.FileRecord) bool {
	if !rule.HasExtension(rec.Ext) {
		return false
	}
	if rule.MinSize != nil && rec.Size < *rule.MinSize {
		return false
	}
	if rule.MaxSize != nil && rec.Size > *rule.MaxSize {
		return false
	}
	if rule.After != nil && rec.ModTime.Before(*rule.After) {
		return false
	}
	if rule.Before != nil && rec.ModTime.After(*rule.Before) {
		return false
	}
	return true
}
