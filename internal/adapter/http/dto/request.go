package dto

// BalancesRequest selects the currency channels for a balance report.
// An empty or missing channel list means no filtering.
type BalancesRequest struct {
	Channels []int `json:"channels"`
}

// PreloadRequest carries the account identifiers of the visible page.
type PreloadRequest struct {
	AccountIDs []string `json:"account_ids"`
}
