package service

import (
	"court-watcher/modules/openings/entity"
)

// NewOpenings returns the openings present in current but absent from
// baseline. Identity is full value equality excluding URLs (see Opening.Key);
// no opening is reported twice. Order follows current.
func NewOpenings(current []entity.Opening, baseline []entity.Opening) []entity.Opening {
	known := make(map[string]struct{}, len(baseline))
	for _, o := range baseline {
		known[o.Key()] = struct{}{}
	}

	var fresh []entity.Opening
	for _, o := range current {
		key := o.Key()
		if _, ok := known[key]; ok {
			continue
		}
		known[key] = struct{}{}
		fresh = append(fresh, o)
	}
	return fresh
}
