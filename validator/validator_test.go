//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validJobMarket = `=== JOB LISTINGS ===

Job #1:
Title: Software Engineer
Company: Tech Corp
Location: Dallas, TX
Salary: $80k-120k
Type: Full-time
Skills: React, Node.js, TypeScript

=== HOT ROLES ===
- Software Engineer (150 openings) [trending up]
- Frontend Developer (85 openings) [stable]

=== IN-DEMAND SKILLS ===
- React (high demand, 200 listings)
- Python (medium demand, 120 listings)

=== TOP EMPLOYERS ===
- Tech Corp (25 openings, Dallas TX)
- Innovation Labs (18 openings)

=== MARKET TRENDS ===
[POSITIVE] AI/ML Integration
Increasing demand for machine learning skills.
`

const validCourse = `=== COURSE CATALOG ===

Course #1:
Code: CS 1337
Name: Computer Science I
Credits: 3
Difficulty: beginner
Prerequisites: None

=== SEMESTER PLAN ===
- Fall 2026 (12 credits): CS 1337, MATH 2413

=== PREREQUISITES ===
- CS 1337 (required for: CS 2336)

=== SKILL AREAS ===
- Programming Fundamentals (high importance): CS 1337

=== ACADEMIC RESOURCES ===
[tutoring] CS Mentor Center
Peer tutoring for introductory courses.
`

const validProject = `=== PROJECT RECOMMENDATIONS ===

Project #1:
Title: Course Planner API
Description: Build a REST API for degree planning.
Skills: Go, PostgreSQL
Difficulty: intermediate

Project #2:
Title: Job Board Scraper
Description: Aggregate listings for student roles.
Skills: Python
Difficulty: beginner
`

func TestValidateJobMarketValid(t *testing.T) {
	result := ValidateJobMarket(validJobMarket)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateJobMarketMissingSections(t *testing.T) {
	result := ValidateJobMarket("just some text")
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "=== JOB LISTINGS ===")
}

func TestValidateJobMarketWarnsOnEmptySections(t *testing.T) {
	text := `=== JOB LISTINGS ===
=== HOT ROLES ===
nothing useful
=== IN-DEMAND SKILLS ===
=== TOP EMPLOYERS ===
=== MARKET TRENDS ===
`
	result := ValidateJobMarket(text)
	assert.True(t, result.Valid, "present-but-empty sections only warn")
	assert.Contains(t, result.Warnings, "No job listings found in JOB LISTINGS section")
	assert.Contains(t, result.Warnings, "No properly formatted hot roles found")
	assert.Contains(t, result.Warnings, "No properly formatted market trends found")
}

func TestValidateJobMarketWarnsOnMissingJobFields(t *testing.T) {
	text := `=== JOB LISTINGS ===
Job #1:
Title: Software Engineer
=== HOT ROLES ===
- Software Engineer (150 openings) [up]
=== IN-DEMAND SKILLS ===
- React (high demand, 200 listings)
=== TOP EMPLOYERS ===
- Tech Corp (25 openings)
=== MARKET TRENDS ===
[NEUTRAL] Remote Work
`
	result := ValidateJobMarket(text)
	assert.True(t, result.Valid)
	assert.Contains(t, result.Warnings, "Job #1 missing field: Company:")
	assert.Contains(t, result.Warnings, "Job #1 missing field: Skills:")
}

func TestValidateCourseValid(t *testing.T) {
	result := ValidateCourse(validCourse)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestValidateCourseMissingSections(t *testing.T) {
	result := ValidateCourse("=== COURSE CATALOG ===\nCourse #1:\nCode: CS 1337\nName: X\nCredits: 3\nDifficulty: beginner")
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
}

func TestValidateProjectValid(t *testing.T) {
	result := ValidateProject(validProject)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestValidateProjectAcceptsShortHeader(t *testing.T) {
	text := "=== PROJECT ===\nProject #1:\nTitle: X\nDescription: Y\nSkills: Go\nDifficulty: advanced\n"
	result := ValidateProject(text)
	assert.True(t, result.Valid)
}

func TestValidateProjectInvalidDifficulty(t *testing.T) {
	text := "=== PROJECT RECOMMENDATIONS ===\nProject #1:\nTitle: X\nDescription: Y\nSkills: Go\nDifficulty: impossible\n"
	result := ValidateProject(text)
	assert.True(t, result.Valid)
	assert.Contains(t, result.Warnings,
		"Project #1 has invalid difficulty level (must be beginner/intermediate/advanced)")
}

func TestValidateProjectMissingHeader(t *testing.T) {
	result := ValidateProject("no sections here")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Warnings, "No projects found in PROJECT RECOMMENDATIONS section")
}

func TestValidateAgentOutputDispatch(t *testing.T) {
	assert.True(t, ValidateAgentOutput(AgentJobMarket, validJobMarket).Valid)
	assert.True(t, ValidateAgentOutput(AgentCourse, validCourse).Valid)
	assert.True(t, ValidateAgentOutput(AgentProject, validProject).Valid)

	result := ValidateAgentOutput("unknown", "text")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "Unknown agent type")
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "format is valid", Result{Valid: true}.String())
	assert.Equal(t, "format is valid (with 2 warnings)",
		Result{Valid: true, Warnings: []string{"a", "b"}}.String())
	assert.Equal(t, "format is invalid: 1 errors, 0 warnings",
		Result{Valid: false, Errors: []string{"a"}}.String())
}
