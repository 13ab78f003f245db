package domain

import "strings"

var documentWeights = [7]int{2, 9, 8, 7, 6, 3, 4}

// ValidDocument checks a national identity document number: 7 or 8 digits,
// left-padded to 8, where the last digit is the check digit of the weighted
// sum of the first seven.
func ValidDocument(doc string) bool {
	if len(doc) < 7 || len(doc) > 8 {
		return false
	}
	for i := 0; i < len(doc); i++ {
		if doc[i] < '0' || doc[i] > '9' {
			return false
		}
	}
	doc = strings.Repeat("0", 8-len(doc)) + doc

	sum := 0
	for i, w := range documentWeights {
		sum += int(doc[i]-'0') * w
	}
	expected := (10 - sum%10) % 10
	return expected == int(doc[7]-'0')
}
