package apa

import "strings"

// Normalize turns the raw groups of a match into a canonical record.
//
// The last group is the year, copied verbatim. Every preceding group is a
// comma-separated name list; tokens are trimmed and empty ones dropped. With
// FormFull the initials that follow each surname are dropped as well.
func Normalize(groups []string, form Form) Record {
	if len(groups) == 0 {
		return Record{}
	}

	rec := Record{Year: groups[len(groups)-1]}

	for _, list := range groups[:len(groups)-1] {
		for _, token := range strings.Split(list, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			if form == FormFull && isInitials(token) {
				continue
			}

			if !rec.Has(token) {
				rec.Names = append(rec.Names, token)
			}
		}
	}

	return rec
}
