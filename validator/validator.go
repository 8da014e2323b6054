//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package validator checks that collaborator outputs follow the sectioned
// text formats the frontend parsers expect. Missing sections are errors;
// malformed entries inside a present section only warn, so a plan with
// sparse data still renders.
package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Agent types accepted by ValidateAgentOutput.
const (
	AgentJobMarket = "job_market"
	AgentCourse    = "course"
	AgentProject   = "project"
)

// Result reports the outcome of one format validation.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r Result) String() string {
	if r.Valid {
		if len(r.Warnings) > 0 {
			return fmt.Sprintf("format is valid (with %d warnings)", len(r.Warnings))
		}
		return "format is valid"
	}
	return fmt.Sprintf("format is invalid: %d errors, %d warnings", len(r.Errors), len(r.Warnings))
}

var (
	jobEntryRe      = regexp.MustCompile(`Job\s+#\d+:`)
	hotRoleRe       = regexp.MustCompile(`(?i)-\s+.+\s+\(\d+\s+openings?\)\s+\[(?:trending\s+)?(?:up|down|stable)\]`)
	demandSkillRe   = regexp.MustCompile(`(?i)-\s+.+\s+\((?:high|medium|low)\s+demand,\s+\d+\s+listings?\)`)
	employerRe      = regexp.MustCompile(`(?i)-\s+.+\s+\(\d+\s+openings?`)
	trendRe         = regexp.MustCompile(`(?i)\[(?:POSITIVE|NEGATIVE|NEUTRAL)\]`)
	courseEntryRe   = regexp.MustCompile(`Course\s+#\d+:`)
	semesterPlanRe  = regexp.MustCompile(`(?i)-\s+.+\s+\(\d+\s+credits?\):`)
	prerequisiteRe  = regexp.MustCompile(`(?i)-\s+.+\s+\(required for:`)
	skillAreaRe     = regexp.MustCompile(`(?i)-\s+.+\s+\((?:high|medium|low)\s+importance\):`)
	resourceRe      = regexp.MustCompile(`(?i)\[(?:tutoring|workshop|lab|club|certification|other)\]`)
	projectEntryRe  = regexp.MustCompile(`Project\s+#\d+:`)
	difficultyWords = []string{"beginner", "intermediate", "advanced"}
)

// ValidateJobMarket checks the job market agent's sectioned output.
func ValidateJobMarket(text string) Result {
	var errs, warns []string

	required := []string{
		"=== JOB LISTINGS ===",
		"=== HOT ROLES ===",
		"=== IN-DEMAND SKILLS ===",
		"=== TOP EMPLOYERS ===",
		"=== MARKET TRENDS ===",
	}
	errs = appendMissingSections(errs, text, required)

	if strings.Contains(text, "=== JOB LISTINGS ===") {
		warns = append(warns, checkEntries(text, jobEntryRe, "Job #",
			"No job listings found in JOB LISTINGS section",
			[]string{"Title:", "Company:", "Location:", "Type:", "Skills:"})...)
	}
	if section, ok := sectionBody(text, "=== HOT ROLES ==="); ok && !hotRoleRe.MatchString(section) {
		warns = append(warns, "No properly formatted hot roles found")
	}
	if section, ok := sectionBody(text, "=== IN-DEMAND SKILLS ==="); ok && !demandSkillRe.MatchString(section) {
		warns = append(warns, "No properly formatted skills found")
	}
	if section, ok := sectionBody(text, "=== TOP EMPLOYERS ==="); ok && !employerRe.MatchString(section) {
		warns = append(warns, "No properly formatted employers found")
	}
	if section, ok := tailSection(text, "=== MARKET TRENDS ==="); ok && !trendRe.MatchString(section) {
		warns = append(warns, "No properly formatted market trends found")
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// ValidateCourse checks the course catalog agent's sectioned output.
func ValidateCourse(text string) Result {
	var errs, warns []string

	required := []string{
		"=== COURSE CATALOG ===",
		"=== SEMESTER PLAN ===",
		"=== PREREQUISITES ===",
		"=== SKILL AREAS ===",
		"=== ACADEMIC RESOURCES ===",
	}
	errs = appendMissingSections(errs, text, required)

	if strings.Contains(text, "=== COURSE CATALOG ===") {
		warns = append(warns, checkEntries(text, courseEntryRe, "Course #",
			"No courses found in COURSE CATALOG section",
			[]string{"Code:", "Name:", "Credits:", "Difficulty:"})...)
	}
	if section, ok := sectionBody(text, "=== SEMESTER PLAN ==="); ok && !semesterPlanRe.MatchString(section) {
		warns = append(warns, "No properly formatted semester plans found")
	}
	if section, ok := sectionBody(text, "=== PREREQUISITES ==="); ok && !prerequisiteRe.MatchString(section) {
		warns = append(warns, "No properly formatted prerequisites found")
	}
	if section, ok := sectionBody(text, "=== SKILL AREAS ==="); ok && !skillAreaRe.MatchString(section) {
		warns = append(warns, "No properly formatted skill areas found")
	}
	if section, ok := tailSection(text, "=== ACADEMIC RESOURCES ==="); ok && !resourceRe.MatchString(section) {
		warns = append(warns, "No properly formatted academic resources found")
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// ValidateProject checks the project advisor agent's output.
func ValidateProject(text string) Result {
	var errs, warns []string

	if !strings.Contains(text, "=== PROJECT RECOMMENDATIONS ===") &&
		!strings.Contains(text, "=== PROJECT ===") {
		errs = append(errs, "Missing required section: === PROJECT RECOMMENDATIONS === or === PROJECT ===")
	}

	entries := splitEntries(text, projectEntryRe, "Project #")
	if len(entries) == 0 {
		warns = append(warns, "No projects found in PROJECT RECOMMENDATIONS section")
	}
	for i, entry := range entries {
		for _, field := range []string{"Title:", "Description:", "Skills:", "Difficulty:"} {
			if !strings.Contains(entry, field) {
				warns = append(warns, fmt.Sprintf("Project #%d missing field: %s", i+1, field))
			}
		}
		if strings.Contains(entry, "Difficulty:") && !hasValidDifficulty(entry) {
			warns = append(warns, fmt.Sprintf(
				"Project #%d has invalid difficulty level (must be beginner/intermediate/advanced)", i+1))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// ValidateAgentOutput dispatches on agent type.
func ValidateAgentOutput(agentType, text string) Result {
	switch agentType {
	case AgentJobMarket:
		return ValidateJobMarket(text)
	case AgentCourse:
		return ValidateCourse(text)
	case AgentProject:
		return ValidateProject(text)
	default:
		return Result{Valid: false, Errors: []string{fmt.Sprintf(
			"Unknown agent type: %s. Must be one of: %s, %s, %s",
			agentType, AgentJobMarket, AgentCourse, AgentProject)}}
	}
}

func appendMissingSections(errs []string, text string, sections []string) []string {
	for _, section := range sections {
		if !strings.Contains(text, section) {
			errs = append(errs, "Missing required section: "+section)
		}
	}
	return errs
}

// sectionBody extracts the text between a section header and the next
// "===" marker.
func sectionBody(text, header string) (string, bool) {
	_, rest, ok := strings.Cut(text, header)
	if !ok {
		return "", false
	}
	if body, _, found := strings.Cut(rest, "==="); found {
		return body, true
	}
	return rest, true
}

// tailSection extracts everything after a header, for sections that run
// to the end of the document.
func tailSection(text, header string) (string, bool) {
	_, rest, ok := strings.Cut(text, header)
	return rest, ok
}

// splitEntries breaks numbered entries ("Job #1:", "Course #2:", ...)
// into their bodies, in order.
func splitEntries(text string, entryRe *regexp.Regexp, nextMarker string) []string {
	locs := entryRe.FindAllStringIndex(text, -1)
	var entries []string
	for i, loc := range locs {
		body := text[loc[1]:]
		sep := nextMarker
		if i == len(locs)-1 {
			sep = "==="
		}
		if cut, _, found := strings.Cut(body, sep); found {
			body = cut
		}
		entries = append(entries, body)
	}
	return entries
}

func checkEntries(text string, entryRe *regexp.Regexp, nextMarker, emptyWarning string, fields []string) []string {
	entries := splitEntries(text, entryRe, nextMarker)
	if len(entries) == 0 {
		return []string{emptyWarning}
	}
	var warns []string
	label := strings.TrimSuffix(nextMarker, " #")
	for i, entry := range entries {
		for _, field := range fields {
			if !strings.Contains(entry, field) {
				warns = append(warns, fmt.Sprintf("%s #%d missing field: %s", label, i+1, field))
			}
		}
	}
	return warns
}

func hasValidDifficulty(entry string) bool {
	for _, line := range strings.Split(entry, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Difficulty:") {
			continue
		}
		lowered := strings.ToLower(line)
		for _, level := range difficultyWords {
			if strings.Contains(lowered, level) {
				return true
			}
		}
		return false
	}
	return false
}
