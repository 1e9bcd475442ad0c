package enums

import "fmt"

// StoreStatus is the directory filter over the stores.active flag.
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
)

// String implements fmt.Stringer.
func (s StoreStatus) String() string {
	return string(s)
}

// Active reports the stores.active value the status selects.
func (s StoreStatus) Active() bool {
	return s == StoreStatusActive
}

// ParseStoreStatus converts raw input into a StoreStatus.
func ParseStoreStatus(value string) (StoreStatus, error) {
	switch StoreStatus(value) {
	case StoreStatusActive, StoreStatusInactive:
		return StoreStatus(value), nil
	}
	return "", fmt.Errorf("invalid store status %q", value)
}
