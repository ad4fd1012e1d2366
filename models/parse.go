package models

import "strings"

// ParseSkillNames turns "Go, Rust, ,SQL" into id-less skills at DefaultSkillLevel.
// Blank names are dropped; repeated names are kept as distinct skills.
func ParseSkillNames(csv string) []SkillInput {
	var skills []SkillInput
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		skills = append(skills, NewSkillInput(name, DefaultSkillLevel))
	}
	return skills
}

// ParseTechnologies splits a comma or newline separated list, keeping order and duplicates.
func ParseTechnologies(text string) []string {
	technologies := []string{}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			technologies = append(technologies, field)
		}
	}
	return technologies
}

func JoinTechnologies(technologies []string) string {
	return strings.Join(technologies, ", ")
}

// ParseLines splits multiline text into trimmed, non-empty lines.
func ParseLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
