package ledger

import "strings"

// Category groups transaction engine results by their three letter prefix.
type Category int

const (
	CategoryUnknown Category = iota
	// CategorySuccess (tes): applied.
	CategorySuccess
	// CategoryClaimed (tec): applied only to claim the fee; the payment did not happen.
	CategoryClaimed
	// CategoryFailure (tef): not applied, fee not claimed.
	CategoryFailure
	// CategoryLocal (tel): rejected by the server we talked to, not relayed.
	CategoryLocal
	// CategoryMalformed (tem): can never succeed as built.
	CategoryMalformed
	// CategoryRetry (ter): not applied yet, may succeed later.
	CategoryRetry
)

const (
	ResultSuccess = "tesSUCCESS"
	ResultQueued  = "terQUEUED"
)

func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "tes"
	case CategoryClaimed:
		return "tec"
	case CategoryFailure:
		return "tef"
	case CategoryLocal:
		return "tel"
	case CategoryMalformed:
		return "tem"
	case CategoryRetry:
		return "ter"
	default:
		return "unknown"
	}
}

// CategoryOf classifies an engine result token such as "tecUNFUNDED_PAYMENT".
func CategoryOf(result string) Category {
	if len(result) < 3 {
		return CategoryUnknown
	}
	switch strings.ToLower(result[:3]) {
	case "tes":
		return CategorySuccess
	case "tec":
		return CategoryClaimed
	case "tef":
		return CategoryFailure
	case "tel":
		return CategoryLocal
	case "tem":
		return CategoryMalformed
	case "ter":
		return CategoryRetry
	default:
		return CategoryUnknown
	}
}

// ProvisionallyAccepted reports whether a submit reply means the server took
// the transaction: applied to its open ledger or held in its queue. Only a
// validated ledger makes the result final.
func ProvisionallyAccepted(result string) bool {
	return result == ResultSuccess || result == ResultQueued
}
