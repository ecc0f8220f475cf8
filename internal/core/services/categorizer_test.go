package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeMerchant(t *testing.T) {
	cases := []struct {
		merchant string
		want     string
	}{
		{"KFC Kuala Lumpur", "food"},
		{"Restoran Nasi Kandar Pelita", "food"},
		{"Kopitiam Lot 10", "food"},
		{"99 Speedmart", "shopping"},
		{"7-Eleven Bukit Bintang", "shopping"},
		{"AEON Mid Valley", "shopping"},
		{"Grab to KLCC", "transport"},
		{"Rapid KL", "transport"},
		{"Petronas Petrol Station", "transport"},
		{"GSC Pavilion", "entertainment"},
		{"TGV Sunway", "entertainment"},
		{"Random Store", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorizeMerchant(tc.merchant), "merchant %q", tc.merchant)
	}
}

func TestCategorizeMerchant_CaseInsensitive(t *testing.T) {
	assert.Equal(t, CategorizeMerchant("kfc jalan ampang"), CategorizeMerchant("KFC JALAN AMPANG"))
}

func TestCategorizeMerchant_FirstGroupWins(t *testing.T) {
	// "food" is a food keyword even though "giant" is a shopping one; group
	// order decides, not keyword position.
	assert.Equal(t, "food", CategorizeMerchant("Giant Food Court"))
}

func TestCategorizeMerchant_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "transport", CategorizeMerchant("MyTaxi Services"))
	}
}
