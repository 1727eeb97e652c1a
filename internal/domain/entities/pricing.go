package entities

import "sort"

// PricingTier identifies a review package
type PricingTier string

const (
	TierNDABasic  PricingTier = "nda_basic"
	TierSLAReview PricingTier = "sla_review"
	TierTechMSA   PricingTier = "tech_msa"
)

// TierInfo describes a review package
type TierInfo struct {
	Key         PricingTier `json:"key"`
	Name        string      `json:"name"`
	Price       int64       `json:"price"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	Features    []string    `json:"features"`
}

var pricingTiers = map[PricingTier]TierInfo{
	TierNDABasic: {
		Key:         TierNDABasic,
		Name:        "NDA Review",
		Price:       60000,
		Currency:    CurrencyNGN,
		Description: "Review of non-disclosure and confidentiality agreements",
		Features: []string{
			"Clause-by-clause review",
			"Risk summary",
			"Redlined document",
			"3 business day turnaround",
		},
	},
	TierSLAReview: {
		Key:         TierSLAReview,
		Name:        "SLA and Service Agreement Reviews",
		Price:       100000,
		Currency:    CurrencyNGN,
		Description: "Review of service level and service agreements",
		Features: []string{
			"Service level and penalty analysis",
			"Liability and indemnity review",
			"Redlined document",
			"5 business day turnaround",
		},
	},
	TierTechMSA: {
		Key:         TierTechMSA,
		Name:        "Tech MSAs and Order Forms",
		Price:       150000,
		Currency:    CurrencyNGN,
		Description: "Review of technology master service agreements and order forms",
		Features: []string{
			"IP and data protection review",
			"Commercial terms analysis",
			"Redlined document with negotiation notes",
			"7 business day turnaround",
		},
	},
}

// LookupTier returns the tier definition for key
func LookupTier(key PricingTier) (TierInfo, bool) {
	info, ok := pricingTiers[key]
	return info, ok
}

// TierName returns the display name of key, or the key itself when unknown
func TierName(key PricingTier) string {
	if info, ok := pricingTiers[key]; ok {
		return info.Name
	}
	return string(key)
}

// PricingCatalogue lists all tiers ordered by price
func PricingCatalogue() []TierInfo {
	out := make([]TierInfo, 0, len(pricingTiers))
	for _, info := range pricingTiers {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
