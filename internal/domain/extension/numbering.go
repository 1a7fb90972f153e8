package extension

import "strconv"

// DefaultNumberFloor is the first extension number handed out for a tenant
// with no extensions yet.
const DefaultNumberFloor = 101

// NextNumber computes the next free extension number from the tenant's
// existing numbers: max(numeric values)+1, or the floor when none parse.
// Values that do not parse as integers are ignored. Advisory only, not a
// reservation; the unique index on (merchant_number, extension_number)
// catches the losing side of a race.
func NextNumber(existing []string, floor int) string {
	if floor <= 0 {
		floor = DefaultNumberFloor
	}

	max := 0
	for _, raw := range existing {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	if max == 0 {
		return strconv.Itoa(floor)
	}
	return strconv.Itoa(max + 1)
}

// DialCode derives the tenant-prefixed dial string: the merchant number
// concatenated with the extension number, no separator.
func DialCode(merchantNumber, extensionNumber string) string {
	return merchantNumber + extensionNumber
}
