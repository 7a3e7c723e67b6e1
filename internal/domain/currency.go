package domain

// Channel identifiers used in aggregation predicates.
const (
	// LocalChannelID is the ledger's home-currency channel. Every
	// local-currency transaction carries this channel id regardless of
	// which catalog identifier selected it.
	LocalChannelID = 0

	// LocalCurrencyIdentifier is the reserved catalog identifier that
	// collapses to LocalChannelID during mapping.
	LocalCurrencyIdentifier = 1
)

// CurrencyChannel is one entry of the currency catalog.
type CurrencyChannel struct {
	Identifier  int
	Code        string
	DisplayName string
}

// IsLocal reports whether the channel is the ledger's home currency.
func (c CurrencyChannel) IsLocal() bool {
	return c.Identifier == LocalCurrencyIdentifier
}

// ToChannel maps a catalog identifier to the ledger's internal
// currency-channel identifier. The reserved local-currency identifier
// collapses to LocalChannelID; all other identifiers pass through
// unchanged, including unknown ones.
func ToChannel(identifier int) int {
	if identifier == LocalCurrencyIdentifier {
		return LocalChannelID
	}
	return identifier
}

// Catalog is the static currency table, loaded once at process start.
type Catalog struct {
	channels []CurrencyChannel
	byID     map[int]CurrencyChannel
	byCode   map[string]CurrencyChannel
}

// NewCatalog creates a catalog from an ordered channel list.
func NewCatalog(channels []CurrencyChannel) *Catalog {
	c := &Catalog{
		channels: make([]CurrencyChannel, len(channels)),
		byID:     make(map[int]CurrencyChannel, len(channels)),
		byCode:   make(map[string]CurrencyChannel, len(channels)),
	}
	copy(c.channels, channels)
	for _, ch := range channels {
		c.byID[ch.Identifier] = ch
		c.byCode[ch.Code] = ch
	}
	return c
}

// DefaultCatalog returns the built-in currency table.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CurrencyChannel{
		{Identifier: LocalCurrencyIdentifier, Code: "TRY", DisplayName: "Turkish Lira"},
		{Identifier: 2, Code: "USD", DisplayName: "US Dollar"},
		{Identifier: 3, Code: "EUR", DisplayName: "Euro"},
		{Identifier: 4, Code: "GBP", DisplayName: "Pound Sterling"},
		{Identifier: 5, Code: "CHF", DisplayName: "Swiss Franc"},
		{Identifier: 6, Code: "JPY", DisplayName: "Japanese Yen"},
	})
}

// ByIdentifier looks up a channel by its catalog identifier.
func (c *Catalog) ByIdentifier(id int) (CurrencyChannel, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// ByCode looks up a channel by its currency code.
func (c *Catalog) ByCode(code string) (CurrencyChannel, bool) {
	ch, ok := c.byCode[code]
	return ch, ok
}

// Channels returns the catalog entries in load order.
func (c *Catalog) Channels() []CurrencyChannel {
	out := make([]CurrencyChannel, len(c.channels))
	copy(out, c.channels)
	return out
}

// Identifiers returns every catalog identifier in load order.
func (c *Catalog) Identifiers() []int {
	ids := make([]int, len(c.channels))
	for i, ch := range c.channels {
		ids[i] = ch.Identifier
	}
	return ids
}
