package views

import "fmt"

// SectionWarning reports a section that could not be computed. The rest of
// the view is still valid.
type SectionWarning struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

func guard(section string, warnings *[]SectionWarning, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			*warnings = append(*warnings, SectionWarning{
				Section: section,
				Message: fmt.Sprintf("%v", r),
			})
		}
	}()
	fn()
}
