package render

import "fmt"

// Season formats a season by its starting year, e.g. 2019 -> "2019-20".
func Season(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// Title names a subject and the seasons a chart covers. Seasons are starting
// years; only the first and last are used.
func Title(name string, seasons ...int) string {
	switch len(seasons) {
	case 0:
		return name
	case 1:
		return fmt.Sprintf("%s in the %s season", name, Season(seasons[0]))
	}
	first, last := seasons[0], seasons[len(seasons)-1]
	switch {
	case first == last:
		return fmt.Sprintf("%s in the %s season", name, Season(first))
	case last-first == 1:
		return fmt.Sprintf("%s in the %s and %s seasons", name, Season(first), Season(last))
	default:
		return fmt.Sprintf("%s from the %s to %s seasons", name, Season(first), Season(last))
	}
}
