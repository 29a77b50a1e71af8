package sidebar

// defaultOptions is the stock sidebar every new agency starts with
var defaultOptions = []struct {
	name, link, icon string
}{
	{"Dashboard", "/agency/dashboard", "category"},
	{"Launchpad", "/agency/launchpad", "clipboardIcon"},
	{"Billing", "/agency/billing", "payment"},
	{"Settings", "/agency/settings", "settings"},
	{"Sub Accounts", "/agency/all-subaccounts", "person"},
	{"Team", "/agency/team", "shield"},
}

// DefaultOptions returns the stock top-level options with fresh ids, ordered
// as they are displayed
func DefaultOptions() []*MenuOption {
	out := make([]*MenuOption, 0, len(defaultOptions))
	for i, d := range defaultOptions {
		opt, err := NewMenuOption(d.name, d.link, d.icon, i, nil)
		if err != nil {
			// the table above is static and valid
			panic(err)
		}
		out = append(out, opt)
	}
	return out
}
