package services

import "strings"

// keywordGroup couples a category tag with the merchant substrings that imply
// it. Groups are evaluated in declaration order and the first hit wins, so
// the mapping is total and deterministic for any merchant string.
type keywordGroup struct {
	category string
	keywords []string
}

// merchantKeywordGroups covers the merchants Malaysian users scan most often.
// Matching is lower-cased substring containment.
var merchantKeywordGroups = []keywordGroup{
	{
		category: "food",
		keywords: []string{"mcd", "kfc", "pizza", "restoran", "cafe", "kopitiam", "mamak", "food"},
	},
	{
		category: "shopping",
		keywords: []string{"99 speedmart", "7-eleven", "giant", "tesco", "aeon", "mydin"},
	},
	{
		category: "transport",
		keywords: []string{"grab", "taxi", "lrt", "mrt", "rapid", "petrol"},
	},
	{
		category: "entertainment",
		keywords: []string{"cinema", "gsc", "tgv", "game"},
	},
}

// fallbackCategory is returned when no keyword group matches.
const fallbackCategory = "other"

// CategorizeMerchant suggests an expense category tag for a merchant name.
// Every input maps to exactly one tag; unknown merchants map to "other".
func CategorizeMerchant(merchant string) string {
	merchantLower := strings.ToLower(merchant)
	for _, group := range merchantKeywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(merchantLower, keyword) {
				return group.category
			}
		}
	}
	return fallbackCategory
}
