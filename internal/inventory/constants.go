package inventory

// Default slot counts per category
const (
	DefaultToolSlots = 8
	DefaultItemSlots = 8
)

// MaxStack is the largest quantity a single item slot holds
const MaxStack = 999
