package domain

import (
	"fmt"
	"strings"
)

// OptionsKey is the storage key holding the process option sets.
const OptionsKey = "processDropdownOptions"

// OptionCategory names one user-editable option list.
type OptionCategory string

const (
	CategoryDepartments OptionCategory = "departments"
	CategoryAutomation  OptionCategory = "automationPotential"
)

var OptionCategories = []OptionCategory{CategoryDepartments, CategoryAutomation}

// ParseOptionCategory accepts the stored name or a short alias.
func ParseOptionCategory(s string) (OptionCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "departments", "department", "dept":
		return CategoryDepartments, nil
	case "automationpotential", "automation_potential", "automation-potential", "automation":
		return CategoryAutomation, nil
	}
	return "", fmt.Errorf("unknown option category %q (valid: departments, automation)", s)
}

// OptionSets are the choices offered for a business process's department
// and automation potential. Neither list is ever empty.
type OptionSets struct {
	Departments         []string `json:"departments"`
	AutomationPotential []string `json:"automationPotential"`
}

// DefaultOptionSets returns the seed lists.
func DefaultOptionSets() OptionSets {
	return OptionSets{
		Departments:         []string{"Sales", "Operations", "Customer Service", "Finance", "IT"},
		AutomationPotential: []string{"High", "Medium", "Low"},
	}
}

// Values returns a copy of the list for cat.
func (o OptionSets) Values(cat OptionCategory) []string {
	switch cat {
	case CategoryDepartments:
		return append([]string(nil), o.Departments...)
	case CategoryAutomation:
		return append([]string(nil), o.AutomationPotential...)
	}
	panic(fmt.Sprintf("domain: unhandled option category %q", string(cat)))
}

// With returns a copy of o with the list for cat replaced.
func (o OptionSets) With(cat OptionCategory, vals []string) OptionSets {
	vals = append([]string(nil), vals...)
	switch cat {
	case CategoryDepartments:
		o.Departments = vals
	case CategoryAutomation:
		o.AutomationPotential = vals
	default:
		panic(fmt.Sprintf("domain: unhandled option category %q", string(cat)))
	}
	return o
}
