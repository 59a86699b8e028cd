/* An internal package with test utilities.
 */

package vtesting

import (
	"os"
	"strings"
	"testing"

	"www.velocidex.com/golang/sqlpager/utils"
)

func ReadFile(t *testing.T, filename string) []byte {
	result, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed reading file: %v", err)
	}
	return result
}

// Compares lists of strings regardless of order.
func CompareStrings(expected []string, watched []string) bool {
	if len(expected) != len(watched) {
		return false
	}

	for _, item := range watched {
		if !utils.InString(expected, item) {
			return false
		}
	}
	return true
}

func ContainsString(expected string, watched []string) bool {
	for _, line := range watched {
		if strings.Contains(line, expected) {
			return true
		}
	}
	return false
}
