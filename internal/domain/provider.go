package domain

// NameProvider supplies human first and last names
type NameProvider interface {
	FirstName() string
	LastName() string
}

// AddressProvider supplies postal addresses.
// State may be empty when the provider's locale has no notion of states.
type AddressProvider interface {
	Address() Address
}
