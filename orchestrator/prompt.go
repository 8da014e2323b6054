//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package orchestrator

import "strings"

// promptFields fixes the rendering order of user-context fields so the
// prompt text is deterministic for a given context map.
var promptFields = []struct {
	key   string
	label string
}{
	{"user_name", "Student name"},
	{"user_major", "Major"},
	{"graduation_year", "Graduation year"},
	{"skills", "Skills"},
	{"user_email", "Contact email"},
	{"user_phone", "Phone"},
	{"user_location", "Location"},
	{"gpa", "GPA"},
	{"career_goal", "Stated career goal"},
	{"bio", "Background"},
	{"student_year", "Academic level"},
	{"courses_taken", "Courses completed"},
	{"time_commitment", "Available time"},
	{"experience", "Experience"},
}

// BuildInputText renders the supervisor prompt: a task preamble followed by
// the non-empty user-context fields in fixed order.
func BuildInputText(goal string, userContext map[string]string) string {
	parts := []string{"Create a comprehensive career plan for: " + goal}
	for _, field := range promptFields {
		value := strings.TrimSpace(userContext[field.key])
		if value == "" {
			continue
		}
		parts = append(parts, field.label+": "+value)
	}
	return strings.Join(parts, "\n")
}
