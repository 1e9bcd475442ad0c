package models

// All lists every persisted model, in dependency order, for schema bootstrapping in tests
// and the local sqlite mode.
func All() []any {
	return []any{
		&Store{},
		&Product{},
		&Cart{},
		&Address{},
		&Order{},
		&Payment{},
		&EmailPreference{},
	}
}
