package utils

import (
	"fmt"
	"time"
)

// GenerateVersionID produces the next free date based version identifier
// (e.g. 26-08-1, 26-08-2) given the already used ones.
func GenerateVersionID(existingVersions []string) string {
	t := time.Now()

	date := t.Format("06-01")

	counter := 1
	newID := fmt.Sprintf("%s-%d", date, counter)
	for {
		idAlreadyPresent := false
		for _, v := range existingVersions {
			if v == newID {
				idAlreadyPresent = true
				break
			}
		}
		if !idAlreadyPresent {
			break
		} else {
			counter += 1
			newID = fmt.Sprintf("%s-%d", date, counter)
		}
	}

	return newID
}
