package sidebar

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// OtherCategory collects options whose name has no entry in the table
const OtherCategory = "Other"

// DefaultCategoryOrder is the display order of the built-in categories
var DefaultCategoryOrder = []string{"Overview", "Sales", "Clients", "Content", "Finance", "Administration"}

// DefaultCategoryTable maps the stock dashboard option names to categories
var DefaultCategoryTable = map[string]string{
	"Dashboard":    "Overview",
	"Launchpad":    "Overview",
	"Reports":      "Overview",
	"Funnels":      "Sales",
	"Pipelines":    "Sales",
	"Automations":  "Sales",
	"Contacts":     "Clients",
	"Sub Accounts": "Clients",
	"Tickets":      "Clients",
	"Media":        "Content",
	"Billing":      "Finance",
	"Invoices":     "Finance",
	"Team":         "Administration",
	"Settings":     "Administration",
}

// CategoryGroup is one display section of the sidebar
type CategoryGroup struct {
	Name    string
	Options []MenuOption
}

// Categorizer assigns options to display categories by name.
// It holds no mutable state after construction and is safe for concurrent use.
type Categorizer struct {
	table map[string]string
	order []string
}

// NewCategorizer builds a categorizer from a name->category table and the
// category display order. Categories used in the table but absent from order
// are displayed after the ordered ones, alphabetically, and before Other.
func NewCategorizer(table map[string]string, order []string) *Categorizer {
	c := &Categorizer{
		table: make(map[string]string, len(table)),
		order: make([]string, 0, len(order)),
	}
	for name, category := range table {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		c.table[foldKey(name)] = category
	}

	seen := make(map[string]bool)
	for _, category := range order {
		category = strings.TrimSpace(category)
		if category == "" || category == OtherCategory || seen[category] {
			continue
		}
		seen[category] = true
		c.order = append(c.order, category)
	}
	var extra []string
	for _, category := range c.table {
		if !seen[category] && category != OtherCategory {
			seen[category] = true
			extra = append(extra, category)
		}
	}
	slices.Sort(extra)
	c.order = append(c.order, extra...)
	return c
}

// DefaultCategorizer returns a categorizer over the built-in table
func DefaultCategorizer() *Categorizer {
	return NewCategorizer(DefaultCategoryTable, DefaultCategoryOrder)
}

// CategoryOf returns the category for an option name. The bool is false when
// the name is unknown, in which case the category is Other.
func (c *Categorizer) CategoryOf(name string) (string, bool) {
	category, ok := c.table[foldKey(name)]
	if !ok {
		return OtherCategory, false
	}
	return category, true
}

// Order returns the display order, Other excluded
func (c *Categorizer) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Group partitions options into categories in display order with Other last.
// Empty categories are omitted and options keep their relative input order.
func (c *Categorizer) Group(options []MenuOption) []CategoryGroup {
	buckets := make(map[string][]MenuOption)
	for _, opt := range options {
		category, _ := c.CategoryOf(opt.Name)
		buckets[category] = append(buckets[category], opt.clone())
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, category := range c.order {
		if opts := buckets[category]; len(opts) > 0 {
			groups = append(groups, CategoryGroup{Name: category, Options: opts})
		}
	}
	if opts := buckets[OtherCategory]; len(opts) > 0 {
		groups = append(groups, CategoryGroup{Name: OtherCategory, Options: opts})
	}
	return groups
}

// foldKey normalizes a name for lookup. A Caser keeps state, so one is made per call.
func foldKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
